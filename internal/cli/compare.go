package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/compare"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two recipe versions",
		Long: `Compare two recipe versions: ingredient and instruction differences,
the weighted similarity score, and a recommended action.

Arguments are version ids in the library or paths to recipe files.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runCompare(opts *RootOptions, cmd *cobra.Command, argA, argB string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}
	a, err := lib.Resolve(ctx, argA)
	if err != nil {
		return reportError(formatter, err)
	}
	b, err := lib.Resolve(ctx, argB)
	if err != nil {
		return reportError(formatter, err)
	}

	result := compare.Documents(a, b, compare.WithWeights(opts.weights()))
	slog.Debug("versions compared",
		"version_a", argA,
		"version_b", argB,
		"overall", result.Similarity.Overall,
		"recommended", result.Recommended,
	)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprint(formatter.Writer, compare.RenderText(result))
	return nil
}
