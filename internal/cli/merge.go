package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <survivor> <merged>",
		Short: "Merge one version into another",
		Long: `Merge two versions of a family: the merged version is archived and
the survivor carries on. If the merged version was the family's main
version, the flag moves to the survivor in the same update.

Content is not combined automatically; fold anything worth keeping into
the survivor before merging.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runMerge(opts *RootOptions, cmd *cobra.Command, survivorID, mergedID string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	survivor, err := lib.NewEngine(opts).Merge(ctx, survivorID, mergedID)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, survivor.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(survivor)
	}
	fmt.Fprintf(formatter.Writer, "✓ merged %s into %s %s\n", mergedID, survivor.Name, survivor.Version.Number)
	return nil
}
