package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
)

// lifecycle is the status transition table: draft → published (publish),
// published → archived (archive), archived → published (restore). A
// published version never returns to draft; no state is terminal.
var lifecycle = map[recipe.VersionStatus]map[recipe.VersionStatus]bool{
	recipe.StatusDraft:     {recipe.StatusPublished: true},
	recipe.StatusPublished: {recipe.StatusArchived: true},
	recipe.StatusArchived:  {recipe.StatusPublished: true},
}

// CanTransition reports whether the state machine allows moving from
// one status to another. Note that draft → published and archived →
// published are distinct moves recorded with different actions; the
// operations pin the from-state themselves.
func CanTransition(from, to recipe.VersionStatus) bool {
	return lifecycle[from][to]
}

// applyTransition writes the status change and appends the matching
// ledger entry. Callers have already validated the move.
func (e *Engine) applyTransition(ctx context.Context, doc *recipe.Document, to recipe.VersionStatus, action ledger.Action, changes []string) (*recipe.Document, error) {
	from := doc.Version.Status
	doc.Version.Status = to
	if err := e.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, doc.ID, err)
	}

	entry := e.newEntry(doc.ID, action)
	entry.Changes = changes
	if err := e.ledger.Append(doc.FamilyKey(), entry); err != nil {
		return nil, err
	}

	slog.Info("version transitioned",
		"version_id", doc.ID,
		"family", doc.FamilyKey(),
		"from", from,
		"to", to,
		"action", action,
	)
	return doc, nil
}
