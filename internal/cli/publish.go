package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a draft version",
		Long: `Publish a draft version.

Publishing requires a change description; pass --description to set or
replace it in the same step.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(rootOpts, cmd, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "change description recorded on the version")

	return cmd
}

func runPublish(opts *RootOptions, cmd *cobra.Command, id, description string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	if description != "" {
		doc, err := lib.Docs.Get(ctx, id)
		if err != nil {
			return reportError(formatter, err)
		}
		doc.Version.ChangeDescription = description
		if err := lib.Docs.Put(ctx, doc); err != nil {
			return reportError(formatter, err)
		}
	}

	doc, err := lib.NewEngine(opts).Publish(ctx, id)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, doc.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	fmt.Fprintf(formatter.Writer, "✓ published %s %s\n", doc.Name, doc.Version.Number)
	return nil
}
