package engine

import (
	"errors"
	"fmt"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// TransitionError reports a lifecycle move the state machine forbids,
// with the operation and both states for diagnostics. Matches
// recipe.ErrInvalidTransition under errors.Is.
type TransitionError struct {
	VersionID string
	From      recipe.VersionStatus
	To        recipe.VersionStatus
	Op        string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s version %s: %s does not transition to %s", e.Op, e.VersionID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return recipe.ErrInvalidTransition }

// DuplicateNumberError reports a version number already issued within a
// family. Matches recipe.ErrDuplicateVersionNumber under errors.Is.
type DuplicateNumberError struct {
	Family string
	Number string
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("family %q already has version %s", e.Family, e.Number)
}

func (e *DuplicateNumberError) Unwrap() error { return recipe.ErrDuplicateVersionNumber }

// AtomicityError reports a multi-version update that could not be
// applied as a unit. Already-applied writes are rolled back before it
// is returned. Matches recipe.ErrAtomicityViolation under errors.Is.
type AtomicityError struct {
	Op        string
	VersionID string
	Err       error
}

func (e *AtomicityError) Error() string {
	return fmt.Sprintf("%s %s: update could not be applied as a unit: %v", e.Op, e.VersionID, e.Err)
}

func (e *AtomicityError) Unwrap() error { return recipe.ErrAtomicityViolation }

// joinValidation flattens all-errors document validation into a single
// error value.
func joinValidation(errs []recipe.ValidationError) error {
	joined := make([]error, len(errs))
	for i, err := range errs {
		joined[i] = err
	}
	return errors.Join(joined...)
}
