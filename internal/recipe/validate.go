package recipe

import (
	"fmt"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// ValidationError represents a validation error with field path and message.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the document against structural rules. Returns all
// errors (not fail-fast) so form surfaces can show every problem at
// once.
func (d *Document) Validate() []ValidationError {
	var errs []ValidationError

	if d.ID == "" {
		errs = append(errs, ValidationError{Field: "id", Message: "must not be empty"})
	}
	if Key(d.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "must not be empty"})
	}

	for i, ing := range d.Ingredients {
		if Key(ing.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("ingredients[%d].name", i),
				Message: "must not be empty",
			})
		}
	}

	if !semver.IsValid(d.Version.Number) {
		errs = append(errs, ValidationError{
			Field:   "version.number",
			Message: fmt.Sprintf("%q is not a major.minor[.patch] version number", d.Version.Number),
		})
	}
	if !d.Version.Type.Valid() {
		errs = append(errs, ValidationError{
			Field:   "version.type",
			Message: fmt.Sprintf("unknown version type %q", d.Version.Type),
		})
	}
	if !d.Version.Status.Valid() {
		errs = append(errs, ValidationError{
			Field:   "version.status",
			Message: fmt.Sprintf("unknown version status %q", d.Version.Status),
		})
	}

	return errs
}
