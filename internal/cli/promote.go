package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPromoteCommand creates the promote command.
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Make a version its family's main version",
		Long: `Make a version its family's main version.

Every sibling is demoted in the same update, so the family always has
exactly one main version. Promoting the current main is a no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromote(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runPromote(opts *RootOptions, cmd *cobra.Command, id string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	doc, err := lib.NewEngine(opts).SetMain(ctx, id)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, doc.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	fmt.Fprintf(formatter.Writer, "✓ promoted %s %s to main\n", doc.Name, doc.Version.Number)
	return nil
}
