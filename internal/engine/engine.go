package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/compare"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/identity"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/ledger"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
)

// Engine coordinates documents, the ledger, and identity into the
// lifecycle operations.
type Engine struct {
	docs   store.DocumentStore
	ledger *ledger.Ledger
	source identity.Source
	ids    identity.IDGenerator

	// promoteMu serializes multi-version family updates (promotion,
	// merge). The underlying stores cannot guarantee atomic multi-record
	// writes, so no two such updates may interleave.
	promoteMu sync.Mutex

	compareOpts []compare.Option
}

// Option configures engine construction.
type Option func(*Engine)

// WithWeights overrides the similarity component weights used by
// Compare.
func WithWeights(w compare.Weights) Option {
	return func(e *Engine) {
		e.compareOpts = append(e.compareOpts, compare.WithWeights(w))
	}
}

// WithSplitter overrides the free-text instruction split policy used by
// Compare.
func WithSplitter(split compare.StepSplitter) Option {
	return func(e *Engine) {
		e.compareOpts = append(e.compareOpts, compare.WithSplitter(split))
	}
}

// New creates an Engine over the given document store, ledger, and
// identity providers.
func New(docs store.DocumentStore, led *ledger.Ledger, source identity.Source, ids identity.IDGenerator, opts ...Option) *Engine {
	e := &Engine{
		docs:   docs,
		ledger: led,
		source: source,
		ids:    ids,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compare loads both versions and runs the diff, scoring, and
// recommendation pipeline. The loads run concurrently; the first
// failure cancels the other.
func (e *Engine) Compare(ctx context.Context, idA, idB string) (*compare.Result, error) {
	var a, b *recipe.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := e.docs.Get(gctx, idA)
		if err != nil {
			return fmt.Errorf("load version A: %w", err)
		}
		a = doc
		return nil
	})
	g.Go(func() error {
		doc, err := e.docs.Get(gctx, idB)
		if err != nil {
			return fmt.Errorf("load version B: %w", err)
		}
		b = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compare %s %s: %w", idA, idB, err)
	}

	result := compare.Documents(a, b, e.compareOpts...)
	slog.Debug("versions compared",
		"version_a", idA,
		"version_b", idB,
		"overall", result.Similarity.Overall,
		"recommended", result.Recommended,
	)
	return result, nil
}

// History returns the family's ledger entries, oldest first.
func (e *Engine) History(familyKey string) []ledger.Entry {
	return e.ledger.History(familyKey)
}

// RecordModification appends a modified entry after an editor saves
// substantive edits to a version. The document write itself goes
// through the document store; only the ledger entry is the engine's.
func (e *Engine) RecordModification(ctx context.Context, versionID string, changes []string) error {
	doc, err := e.docs.Get(ctx, versionID)
	if err != nil {
		return fmt.Errorf("record modification: %w", err)
	}

	entry := e.newEntry(versionID, ledger.ActionModified)
	entry.Changes = slices.Clone(changes)
	if err := e.ledger.Append(doc.FamilyKey(), entry); err != nil {
		return err
	}

	slog.Debug("modification recorded", "version_id", versionID, "changes", len(changes))
	return nil
}

// newEntry stamps a fresh ledger entry with identity and clock values.
func (e *Engine) newEntry(versionID string, action ledger.Action) ledger.Entry {
	return ledger.Entry{
		ID:        e.ids.NewID(),
		VersionID: versionID,
		Action:    action,
		Timestamp: e.source.Now(),
		AuthorID:  e.source.AuthorID(),
	}
}
