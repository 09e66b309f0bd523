package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a published version",
		Long: `Archive a published version.

Archived versions keep their file and history and can be restored;
drafts cannot be archived.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runArchive(opts *RootOptions, cmd *cobra.Command, id string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	doc, err := lib.NewEngine(opts).Archive(ctx, id)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, doc.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	fmt.Fprintf(formatter.Writer, "✓ archived %s %s\n", doc.Name, doc.Version.Number)
	return nil
}
