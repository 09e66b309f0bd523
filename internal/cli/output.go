package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (schema violations, rejected transitions, malformed versions)
	ExitCommandError = 2 // Command error (unknown ids, missing paths, unreadable library)
)

// Error codes carried in JSON error responses and ExitError messages.
const (
	ErrCodeGeneric    = "internal_error"
	ErrCodeNotFound   = "version_not_found"
	ErrCodePath       = "path_error"
	ErrCodeArgument   = "invalid_argument"
	ErrCodeFormat     = "invalid_version_format"
	ErrCodeTransition = "invalid_transition"
	ErrCodeDuplicate  = "duplicate_version_number"
	ErrCodeValidation = "validation_failed"
	ErrCodeAtomicity  = "atomic_update_failed"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// newFormatter builds a command's formatter from the root options and
// the command's streams.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// Response is the standard JSON envelope for CLI output.
type Response struct {
	Status string         `json:"status"`          // "ok" or "error"
	Data   interface{}    `json:"data,omitempty"`  // success payload
	Error  *ResponseError `json:"error,omitempty"` // error details
}

// ResponseError is the error structure for CLI responses.
type ResponseError struct {
	Code    string      `json:"code"`              // machine-readable code, e.g. "invalid_transition"
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error: &ResponseError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// errorCode classifies an error into its response code.
func errorCode(err error) string {
	var (
		docErr  *InvalidDocumentError
		valErr  recipe.ValidationError
		pathErr *fs.PathError
	)
	switch {
	case errors.As(err, &docErr):
		return ErrCodeValidation
	case errors.As(err, &valErr):
		return ErrCodeValidation
	case errors.Is(err, recipe.ErrVersionNotFound):
		return ErrCodeNotFound
	case errors.Is(err, recipe.ErrInvalidTransition):
		return ErrCodeTransition
	case errors.Is(err, recipe.ErrDuplicateVersionNumber):
		return ErrCodeDuplicate
	case errors.Is(err, recipe.ErrAtomicityViolation):
		return ErrCodeAtomicity
	case errors.Is(err, semver.ErrInvalidFormat):
		return ErrCodeFormat
	case errors.Is(err, errNoRecipeFiles), errors.Is(err, fs.ErrNotExist), errors.As(err, &pathErr):
		return ErrCodePath
	default:
		return ErrCodeGeneric
	}
}

// exitCodeFor maps an error to its exit code: missing ids and path
// problems are command errors, everything else is a domain failure.
func exitCodeFor(err error) int {
	switch errorCode(err) {
	case ErrCodeNotFound, ErrCodePath, ErrCodeArgument:
		return ExitCommandError
	default:
		return ExitFailure
	}
}

// reportError renders err through the formatter and converts it into
// an ExitError carrying the matching exit code. Commands return the
// result directly.
func reportError(f *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exitCodeFor(err), code, err)
}
