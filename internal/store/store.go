// Package store defines the storage interfaces the engine and autosave
// consume, plus in-memory reference implementations.
//
// The core is storage-agnostic: nothing here persists anything. Real
// deployments supply their own implementations; the memory stores back
// tests, the conformance harness, and the CLI's per-invocation working
// set.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// ErrDraftNotFound indicates a draft id with no stored snapshot.
var ErrDraftNotFound = errors.New("draft not found")

// DocumentStore holds the canonical recipe documents, one per version
// id.
type DocumentStore interface {
	// Get returns the document for a version id, or an error matching
	// recipe.ErrVersionNotFound.
	Get(ctx context.Context, id string) (*recipe.Document, error)

	// Put stores a document keyed by its id, overwriting any previous
	// value.
	Put(ctx context.Context, doc *recipe.Document) error

	// ListVersions returns every document in a family, sorted by
	// version number ascending.
	ListVersions(ctx context.Context, familyKey string) ([]*recipe.Document, error)

	// ListFamilies returns the family keys with at least one document,
	// sorted.
	ListFamilies(ctx context.Context) ([]string, error)
}

// Draft is an autosaved snapshot of in-progress edits, distinct from
// any persisted version.
type Draft struct {
	ID      string           `json:"id" yaml:"id"`
	State   recipe.FormState `json:"state" yaml:"state"`
	SavedAt time.Time        `json:"saved_at" yaml:"saved_at"`
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	return &Draft{ID: d.ID, State: *d.State.Clone(), SavedAt: d.SavedAt}
}

// DraftStore holds at most one draft per document id.
type DraftStore interface {
	// Get returns the draft for a document id, or an error matching
	// ErrDraftNotFound.
	Get(ctx context.Context, id string) (*Draft, error)

	// Put stores a draft keyed by d.ID, overwriting any previous
	// snapshot.
	Put(ctx context.Context, d *Draft) error

	// Delete removes the draft for an id. Deleting an absent draft is
	// a no-op: clearing is idempotent.
	Delete(ctx context.Context, id string) error
}
