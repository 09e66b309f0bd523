package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
)

// CloseOutcome is what Close reports back to the caller.
type CloseOutcome string

const (
	// CloseClean : nothing unsaved; the session is done and any pending
	// autosave is cancelled.
	CloseClean CloseOutcome = "clean"
	// CloseBlocked : unsaved changes exist. The caller resolves the
	// three-way choice: Discard, SaveAndClose, or keep the session open.
	CloseBlocked CloseOutcome = "unsaved_changes"
)

// EditorSession reconciles the draft store with the document store for
// one open editor. The draft and the canonical document are separate
// stores; the session is the explicit seam between them, so the
// restore / discard / save decisions stay visible instead of being
// folded into a merged entity.
//
// A session belongs to a single editor and is not safe for concurrent
// use; the Saver it forwards to is.
type EditorSession struct {
	docs   store.DocumentStore
	drafts store.DraftStore
	saver  *Saver

	id    string
	doc   *recipe.Document
	form  *recipe.FormState
	draft *store.Draft
	dirty bool
}

// Open starts an editing session for a document id. For an id with no
// persisted version yet, the draft store is checked for a leftover
// draft; if one exists the session reports RestorePrompt and the caller
// decides between Restore and DeclineRestore before editing.
func Open(ctx context.Context, docs store.DocumentStore, drafts store.DraftStore, saver *Saver, id string) (*EditorSession, error) {
	s := &EditorSession{docs: docs, drafts: drafts, saver: saver, id: id}

	doc, err := docs.Get(ctx, id)
	switch {
	case err == nil:
		s.doc = doc
		s.form = &recipe.FormState{Document: *doc.Clone()}
	case errors.Is(err, recipe.ErrVersionNotFound):
		s.form = &recipe.FormState{Document: recipe.Document{ID: id}}
		draft, derr := drafts.Get(ctx, id)
		switch {
		case derr == nil:
			s.draft = draft
		case errors.Is(derr, store.ErrDraftNotFound):
		default:
			return nil, fmt.Errorf("open editor %s: %w", id, derr)
		}
	default:
		return nil, fmt.Errorf("open editor %s: %w", id, err)
	}

	slog.Debug("editor opened",
		"id", id,
		"is_new", s.doc == nil,
		"restorable", s.draft != nil,
	)
	return s, nil
}

// ID returns the document id the session edits.
func (s *EditorSession) ID() string { return s.id }

// IsNew reports whether the id had no persisted version at open time.
func (s *EditorSession) IsNew() bool { return s.doc == nil }

// Document returns the persisted baseline, nil for a new document.
func (s *EditorSession) Document() *recipe.Document { return s.doc }

// Form returns the working copy. The caller mutates it and hands it
// back through Edit.
func (s *EditorSession) Form() *recipe.FormState { return s.form }

// HasUnsavedChanges reports whether the form has diverged from the
// persisted document. Autosaved drafts do not clear it; only an
// explicit save, discard, or restore does.
func (s *EditorSession) HasUnsavedChanges() bool { return s.dirty }

// RestorePrompt reports whether an unresolved draft was found at open.
func (s *EditorSession) RestorePrompt() bool { return s.draft != nil }

// Draft returns the restorable draft found at open, nil if none or
// already resolved.
func (s *EditorSession) Draft() *store.Draft { return s.draft }

// Restore replaces the working copy with the draft found at open and
// resets the unsaved-changes flag. Any autosave pending from edits made
// before restoring is stale and gets cancelled.
func (s *EditorSession) Restore() (*recipe.FormState, error) {
	if s.draft == nil {
		return nil, fmt.Errorf("restore %s: %w", s.id, store.ErrDraftNotFound)
	}
	s.form = s.draft.State.Clone()
	s.draft = nil
	s.dirty = false
	s.saver.Cancel(s.id)
	slog.Debug("draft restored", "id", s.id)
	return s.form, nil
}

// DeclineRestore deletes the draft found at open and continues the
// session from a clean form.
func (s *EditorSession) DeclineRestore(ctx context.Context) error {
	if s.draft == nil {
		return nil
	}
	if err := s.drafts.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("decline restore %s: %w", s.id, err)
	}
	s.draft = nil
	return nil
}

// Edit replaces the working copy with the caller's current form state,
// marks the session dirty, and schedules the debounced draft write.
func (s *EditorSession) Edit(state *recipe.FormState) Status {
	s.form = state.Clone()
	s.dirty = true
	return s.saver.Save(s.id, state)
}

// SaveAndClose persists the working copy as the canonical document,
// deletes the draft, and drops any pending autosave. Returns the saved
// document.
func (s *EditorSession) SaveAndClose(ctx context.Context) (*recipe.Document, error) {
	doc := s.form.Document.Clone()
	if err := s.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("save %s: %w", s.id, err)
	}
	if err := s.drafts.Delete(ctx, s.id); err != nil {
		// The document is saved; a leftover draft is overwritten or
		// cleared by the next session.
		slog.Warn("draft cleanup failed", "id", s.id, "error", err)
	}
	s.saver.Cancel(s.id)
	s.doc = doc
	s.draft = nil
	s.dirty = false
	slog.Info("document saved", "id", s.id, "name", doc.Name)
	return doc.Clone(), nil
}

// Discard deletes the draft, drops any pending autosave, and resets the
// working copy to the persisted baseline.
func (s *EditorSession) Discard(ctx context.Context) error {
	if err := s.drafts.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("discard %s: %w", s.id, err)
	}
	s.saver.Cancel(s.id)
	s.draft = nil
	s.dirty = false
	if s.doc != nil {
		s.form = &recipe.FormState{Document: *s.doc.Clone()}
	} else {
		s.form = &recipe.FormState{Document: recipe.Document{ID: s.id}}
	}
	slog.Debug("draft discarded", "id", s.id)
	return nil
}

// Close ends the session when nothing is unsaved, cancelling any
// pending autosave. With unsaved changes it reports CloseBlocked and
// changes nothing; the caller follows up with Discard, SaveAndClose, or
// keeps editing.
func (s *EditorSession) Close() CloseOutcome {
	if s.dirty {
		return CloseBlocked
	}
	s.saver.Cancel(s.id)
	return CloseClean
}
