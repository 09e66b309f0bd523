package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/compare"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/config"
)

// RootOptions holds global flags and the loaded configuration shared
// by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Library    string // recipe library directory
	ConfigPath string

	// Config is set by the root PersistentPreRunE. Commands built
	// standalone (tests do this) see nil and fall back to defaults.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// effectiveConfig returns the loaded configuration, or the built-in
// defaults when the command runs outside the root command.
func (o *RootOptions) effectiveConfig() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Default()
}

// weights returns the similarity weights from the configuration.
func (o *RootOptions) weights() compare.Weights {
	c := o.effectiveConfig().Compare
	return compare.Weights{
		Ingredient:  c.IngredientWeight,
		Instruction: c.InstructionWeight,
		Metadata:    c.MetadataWeight,
	}
}

// NewRootCommand creates the root command for the birch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "birch",
		Short: "Birch Lounge recipe version control",
		Long: "Version control and semantic comparison for cocktail recipes:\n" +
			"branch, publish, and compare recipe versions kept in a YAML library.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Flags win; unset flags fall back to the configuration.
			if !cmd.Flags().Changed("format") {
				opts.Format = cfg.Format
			}
			if !cmd.Flags().Changed("library") {
				opts.Library = cfg.Library
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			opts.Config = cfg
			configureLogging(cmd, opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Library, "library", "L", ".", "recipe library directory")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default birch.yaml in the working directory)")

	// Add subcommands
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewBranchCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewMergeCommand(opts))
	cmd.AddCommand(NewPromoteCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewBumpCommand(opts))

	return cmd
}

// configureLogging routes slog through the command's error stream so
// JSON on stdout stays parseable.
func configureLogging(cmd *cobra.Command, opts *RootOptions) {
	level := parseLevel(opts.Config.Log.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
