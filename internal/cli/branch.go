package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/engine"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// branchFlags holds the branch command's flag values.
type branchFlags struct {
	number  string
	major   bool
	minor   bool
	patch   bool
	verType string
	label   string
	reason  string

	copyIngredients  bool
	copyInstructions bool
	copyMetadata     bool
}

// NewBranchCommand creates the branch command.
func NewBranchCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &branchFlags{}

	cmd := &cobra.Command{
		Use:   "branch <id>",
		Short: "Create a new version from an existing one",
		Long: `Create a new draft version branched from an existing version.

The number comes from --number, or is computed from the base with
--major/--minor/--patch (default --minor). Content copying is on by
default; switch sections off to start them empty.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranch(rootOpts, cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.number, "number", "", "version number for the new version (default: bump the base)")
	cmd.Flags().BoolVar(&flags.major, "major", false, "compute the number with a major bump")
	cmd.Flags().BoolVar(&flags.minor, "minor", false, "compute the number with a minor bump")
	cmd.Flags().BoolVar(&flags.patch, "patch", false, "compute the number with a patch bump")
	cmd.MarkFlagsMutuallyExclusive("number", "major", "minor", "patch")

	cmd.Flags().StringVar(&flags.verType, "type", "variation", "version type (variation|improvement|seasonal|source|custom)")
	cmd.Flags().StringVar(&flags.label, "name", "", "display label for the new version")
	cmd.Flags().StringVar(&flags.reason, "reason", "", "why this version was branched")

	cmd.Flags().BoolVar(&flags.copyIngredients, "copy-ingredients", true, "copy the base ingredients")
	cmd.Flags().BoolVar(&flags.copyInstructions, "copy-instructions", true, "copy the base instructions")
	cmd.Flags().BoolVar(&flags.copyMetadata, "copy-metadata", true, "copy the base scalar metadata")

	return cmd
}

func runBranch(opts *RootOptions, cmd *cobra.Command, baseID string, flags *branchFlags) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	verType, err := recipe.ParseVersionType(flags.verType)
	if err != nil {
		_ = formatter.Error(ErrCodeArgument, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeArgument, err)
	}

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}
	base, err := lib.Docs.Get(ctx, baseID)
	if err != nil {
		return reportError(formatter, err)
	}

	number := flags.number
	if number == "" {
		inc := semver.Minor
		switch {
		case flags.major:
			inc = semver.Major
		case flags.patch:
			inc = semver.Patch
		}
		number, err = semver.Next(base.Version.Number, inc)
		if err != nil {
			return reportError(formatter, fmt.Errorf("branch from %s: %w", baseID, err))
		}
	}

	meta := recipe.VersionMeta{
		Number:       number,
		Name:         flags.label,
		Type:         verType,
		BranchReason: flags.reason,
	}
	branchOpts := engine.BranchOptions{
		CopyIngredients:  flags.copyIngredients,
		CopyInstructions: flags.copyInstructions,
		CopyMetadata:     flags.copyMetadata,
	}

	doc, err := lib.NewEngine(opts).CreateVersion(ctx, baseID, meta, branchOpts)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, doc.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(doc)
	}
	fmt.Fprintf(formatter.Writer, "✓ branched %s %s from %s (%s)\n", doc.Name, doc.Version.Number, base.Version.Number, doc.ID)
	return nil
}
