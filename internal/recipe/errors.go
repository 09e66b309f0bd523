package recipe

import "errors"

// Domain error taxonomy. Callers match with errors.Is; packages that
// need structured detail wrap these in typed errors.
var (
	// ErrVersionNotFound indicates a version id that no store holds.
	ErrVersionNotFound = errors.New("version not found")

	// ErrDuplicateVersionNumber indicates a version number already
	// issued within the family.
	ErrDuplicateVersionNumber = errors.New("duplicate version number in family")

	// ErrInvalidTransition indicates a lifecycle move the state machine
	// forbids, such as archiving a draft.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDraftWriteFailure indicates the draft store rejected or failed
	// a write.
	ErrDraftWriteFailure = errors.New("draft write failed")

	// ErrAtomicityViolation indicates a multi-document update that
	// could not be applied whole; no partial state was committed.
	ErrAtomicityViolation = errors.New("atomic update could not be applied")
)
