package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived version to published",
		Long: `Restore an archived version to published.

The move is recorded as its own restored action, not a second publish.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runRestore(opts *RootOptions, cmd *cobra.Command, id string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	doc, err := lib.NewEngine(opts).Restore(ctx, id)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, doc.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	fmt.Fprintf(formatter.Writer, "✓ restored %s %s\n", doc.Name, doc.Version.Number)
	return nil
}
