package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/schema"
)

// FileValidation is one file's validation outcome.
type FileValidation struct {
	File   string         `json:"file"`
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

// ValidationReport holds the validate command's results.
type ValidationReport struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file|dir>",
		Short: "Validate recipe files against the document schema",
		Long: `Validate recipe YAML files against the embedded document schema.

A directory argument validates every recipe file in it (history.yaml is
skipped). All violations are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	files, err := recipeFilesAt(path)
	if err != nil {
		return reportError(formatter, err)
	}
	formatter.VerboseLog("Validating %d recipe file(s)", len(files))

	report := ValidationReport{Valid: true}
	invalid := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return reportError(formatter, err)
		}
		name := filepath.Base(file)
		issues := schema.ValidateBytes(name, data)
		report.Files = append(report.Files, FileValidation{
			File:   name,
			Valid:  len(issues) == 0,
			Issues: issues,
		})
		if len(issues) > 0 {
			report.Valid = false
			invalid++
		}
	}

	if formatter.Format == "json" {
		if report.Valid {
			return formatter.Success(report)
		}

		response := Response{
			Status: "error",
			Data:   report,
			Error: &ResponseError{
				Code:    ErrCodeValidation,
				Message: fmt.Sprintf("%d of %d file(s) invalid", invalid, len(report.Files)),
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", invalid))
	}

	// Text format
	for _, file := range report.Files {
		if file.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", file.File)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✗ %s\n", file.File)
		for _, issue := range file.Issues {
			fmt.Fprintf(formatter.Writer, "    %s\n", issue)
		}
	}
	if !report.Valid {
		fmt.Fprintf(formatter.Writer, "\n✗ %d of %d file(s) invalid\n", invalid, len(report.Files))
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", invalid))
	}
	if len(report.Files) > 1 {
		fmt.Fprintf(formatter.Writer, "\n✓ %d file(s) valid\n", len(report.Files))
	}
	return nil
}

// recipeFilesAt expands a path argument into the recipe files it
// names: the file itself, or every recipe file in the directory.
func recipeFilesAt(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == HistoryFile || !isRecipeFile(name) {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("validate %s: %w", path, errNoRecipeFiles)
	}
	sort.Strings(files)
	return files, nil
}
