package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// Publish moves a draft to published. A non-empty change description is
// required and becomes the published entry's change list.
func (e *Engine) Publish(ctx context.Context, versionID string) (*recipe.Document, error) {
	doc, err := e.docs.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	if doc.Version.Status != recipe.StatusDraft {
		return nil, &TransitionError{VersionID: versionID, From: doc.Version.Status, To: recipe.StatusPublished, Op: "publish"}
	}
	if strings.TrimSpace(doc.Version.ChangeDescription) == "" {
		return nil, recipe.ValidationError{Field: "version.change_description", Message: "required to publish"}
	}
	return e.applyTransition(ctx, doc, recipe.StatusPublished, ledger.ActionPublished, []string{doc.Version.ChangeDescription})
}

// Archive moves a published version to archived. Archiving a draft is
// an invalid transition.
func (e *Engine) Archive(ctx context.Context, versionID string) (*recipe.Document, error) {
	doc, err := e.docs.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	if doc.Version.Status != recipe.StatusPublished {
		return nil, &TransitionError{VersionID: versionID, From: doc.Version.Status, To: recipe.StatusArchived, Op: "archive"}
	}
	return e.applyTransition(ctx, doc, recipe.StatusArchived, ledger.ActionArchived, nil)
}

// Restore moves an archived version back to published, recorded as its
// own restored action rather than a second published entry.
func (e *Engine) Restore(ctx context.Context, versionID string) (*recipe.Document, error) {
	doc, err := e.docs.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if doc.Version.Status != recipe.StatusArchived {
		return nil, &TransitionError{VersionID: versionID, From: doc.Version.Status, To: recipe.StatusPublished, Op: "restore"}
	}
	return e.applyTransition(ctx, doc, recipe.StatusPublished, ledger.ActionRestored, nil)
}

// Merge combines two versions of one family: the merged version is
// archived and the survivor carries on, with a merged entry recorded
// against it. If the merged version was the family's main version, the
// flag moves to the survivor in the same atomic update. Returns the
// survivor.
//
// Content is not combined automatically; callers fold anything they
// want to keep into the survivor before merging.
func (e *Engine) Merge(ctx context.Context, survivorID, mergedID string) (*recipe.Document, error) {
	if survivorID == mergedID {
		return nil, fmt.Errorf("merge: survivor and merged are the same version %q", survivorID)
	}

	e.promoteMu.Lock()
	defer e.promoteMu.Unlock()

	survivor, err := e.docs.Get(ctx, survivorID)
	if err != nil {
		return nil, fmt.Errorf("merge survivor: %w", err)
	}
	merged, err := e.docs.Get(ctx, mergedID)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	family := survivor.FamilyKey()
	if merged.FamilyKey() != family {
		return nil, fmt.Errorf("merge: versions belong to different families (%q, %q)", family, merged.FamilyKey())
	}
	if merged.Version.Status != recipe.StatusPublished {
		return nil, &TransitionError{VersionID: mergedID, From: merged.Version.Status, To: recipe.StatusArchived, Op: "merge"}
	}

	transferMain := merged.Version.IsMain && !survivor.Version.IsMain

	merged.Version.Status = recipe.StatusArchived
	merged.Version.IsMain = false
	updates := []*recipe.Document{merged}
	if transferMain {
		survivor.Version.IsMain = true
		updates = append(updates, survivor)
	}
	if err := e.applyAll(ctx, updates); err != nil {
		return nil, &AtomicityError{Op: "merge", VersionID: survivorID, Err: err}
	}

	mergedEntry := e.newEntry(survivorID, ledger.ActionMerged)
	mergedEntry.Changes = []string{fmt.Sprintf("Merged version %s", merged.Version.Number)}
	mergedEntry.Metadata = map[string]string{"merged_version_id": mergedID}
	if err := e.ledger.Append(family, mergedEntry); err != nil {
		return nil, err
	}

	archivedEntry := e.newEntry(mergedID, ledger.ActionArchived)
	archivedEntry.Metadata = map[string]string{"merged_into": survivorID}
	if err := e.ledger.Append(family, archivedEntry); err != nil {
		return nil, err
	}

	slog.Info("versions merged",
		"survivor_id", survivorID,
		"merged_id", mergedID,
		"family", family,
		"main_transferred", transferMain,
	)
	return survivor, nil
}

// SetMain promotes a version to its family's main version, demoting
// every sibling in the same atomic update. Promoting the current main
// is a no-op. Returns the promoted document.
func (e *Engine) SetMain(ctx context.Context, versionID string) (*recipe.Document, error) {
	e.promoteMu.Lock()
	defer e.promoteMu.Unlock()

	target, err := e.docs.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("promote: %w", err)
	}
	if target.Version.IsMain {
		return target, nil
	}

	family := target.FamilyKey()
	siblings, err := e.docs.ListVersions(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("promote %s: list family: %w", versionID, err)
	}

	// Stage the full update set: demote every current main, then promote
	// the target. Applied all-or-nothing below.
	var updates []*recipe.Document
	for _, sib := range siblings {
		if sib.ID != versionID && sib.Version.IsMain {
			sib.Version.IsMain = false
			updates = append(updates, sib)
		}
	}
	target.Version.IsMain = true
	updates = append(updates, target)

	if err := e.applyAll(ctx, updates); err != nil {
		return nil, &AtomicityError{Op: "promote", VersionID: versionID, Err: err}
	}

	slog.Info("main version promoted",
		"version_id", versionID,
		"family", family,
		"demoted", len(updates)-1,
	)
	return target, nil
}

// applyAll writes every update, undoing the already-applied writes if a
// later one fails, so the family never keeps a partial multi-version
// update.
func (e *Engine) applyAll(ctx context.Context, updates []*recipe.Document) error {
	applied := make([]*recipe.Document, 0, len(updates))
	for _, doc := range updates {
		prior, err := e.docs.Get(ctx, doc.ID)
		if err != nil {
			e.revert(ctx, applied)
			return err
		}
		if err := e.docs.Put(ctx, doc); err != nil {
			e.revert(ctx, applied)
			return err
		}
		applied = append(applied, prior)
	}
	return nil
}

// revert restores prior document states, newest first. Failures are
// logged and skipped: rollback is best effort once the store itself is
// failing.
func (e *Engine) revert(ctx context.Context, priors []*recipe.Document) {
	for i := len(priors) - 1; i >= 0; i-- {
		if err := e.docs.Put(ctx, priors[i]); err != nil {
			slog.Error("rollback write failed", "version_id", priors[i].ID, "error", err)
		}
	}
}
