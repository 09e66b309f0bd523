package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// BumpResult holds the bump command's JSON payload.
type BumpResult struct {
	Current   string `json:"current"`
	Increment string `json:"increment"`
	Next      string `json:"next"`
}

// NewBumpCommand creates the bump command.
func NewBumpCommand(rootOpts *RootOptions) *cobra.Command {
	var major, minor, patch bool

	cmd := &cobra.Command{
		Use:   "bump <version>",
		Short: "Compute the next version number",
		Long: `Compute the next major.minor.patch version number.

Accepts two- and three-part numbers ("1.2" means 1.2.0) and applies the
selected increment. Defaults to --patch.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			inc := semver.Patch
			switch {
			case major:
				inc = semver.Major
			case minor:
				inc = semver.Minor
			}
			return runBump(rootOpts, cmd, args[0], inc)
		},
	}

	cmd.Flags().BoolVar(&major, "major", false, "increment the major version")
	cmd.Flags().BoolVar(&minor, "minor", false, "increment the minor version")
	cmd.Flags().BoolVar(&patch, "patch", false, "increment the patch version")
	cmd.MarkFlagsMutuallyExclusive("major", "minor", "patch")

	return cmd
}

func runBump(opts *RootOptions, cmd *cobra.Command, current string, inc semver.Increment) error {
	formatter := newFormatter(opts, cmd)

	next, err := semver.Next(current, inc)
	if err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(BumpResult{Current: current, Increment: string(inc), Next: next})
	}
	fmt.Fprintln(formatter.Writer, next)
	return nil
}
