package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <family|id>",
		Short: "Show a family's change history",
		Long: `Show a family's ledger entries, newest first.

The argument is a family name ("Old Fashioned") or any version id in
the family.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command, arg string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	family := recipe.Key(arg)
	if doc, err := lib.Docs.Get(ctx, arg); err == nil {
		family = doc.FamilyKey()
	}

	// Ledger order is oldest first; display newest first.
	entries := lib.Ledger.History(family)
	slices.Reverse(entries)

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(formatter.Writer, "No history for %q\n", arg)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %-9s  %s", e.Timestamp.UTC().Format(time.RFC3339), e.Action, e.VersionID)
		if e.PreviousVersionID != "" {
			fmt.Fprintf(formatter.Writer, "  (from %s)", e.PreviousVersionID)
		}
		fmt.Fprintln(formatter.Writer)
		for _, change := range e.Changes {
			fmt.Fprintf(formatter.Writer, "    - %s\n", change)
		}
	}
	return nil
}
