package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <recipe.yaml>",
		Short: "Import a recipe file as a new family root",
		Long: `Import a recipe file into the library as the root version of a new
version family.

Missing version metadata gets the root defaults: number 1.0.0, type
original, status draft, main version of its family. An id is minted and
the canonical file is written into the library.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	data, err := os.ReadFile(path)
	if err != nil {
		return reportError(formatter, err)
	}
	var doc recipe.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return reportError(formatter, fmt.Errorf("parse %s: %w", path, err))
	}

	lib, err := OpenLibrary(ctx, opts.Library)
	if err != nil {
		return reportError(formatter, err)
	}

	created, err := lib.NewEngine(opts).CreateRoot(ctx, &doc)
	if err != nil {
		return reportError(formatter, err)
	}
	if err := lib.SaveFamily(ctx, created.FamilyKey()); err != nil {
		return reportError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(created)
	}
	fmt.Fprintf(formatter.Writer, "✓ created %s %s (%s)\n", created.Name, created.Version.Number, created.ID)
	return nil
}
