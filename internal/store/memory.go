package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/semver"
)

// Compile-time interface checks.
var (
	_ DocumentStore = (*MemoryDocumentStore)(nil)
	_ DraftStore    = (*MemoryDraftStore)(nil)
)

// MemoryDocumentStore is the reference DocumentStore: an RWMutex-guarded
// map that deep-copies on every boundary crossing.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*recipe.Document
}

// NewMemoryDocumentStore returns an empty document store.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]*recipe.Document)}
}

func (s *MemoryDocumentStore) Get(ctx context.Context, id string) (*recipe.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, recipe.ErrVersionNotFound)
	}
	return doc.Clone(), nil
}

func (s *MemoryDocumentStore) Put(ctx context.Context, doc *recipe.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("put: document has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryDocumentStore) ListVersions(ctx context.Context, familyKey string) ([]*recipe.Document, error) {
	s.mu.RLock()
	var out []*recipe.Document
	for _, doc := range s.docs {
		if doc.FamilyKey() == familyKey {
			out = append(out, doc.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return lessVersion(out[i], out[j])
	})
	return out, nil
}

func (s *MemoryDocumentStore) ListFamilies(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	seen := make(map[string]bool)
	for _, doc := range s.docs {
		seen[doc.FamilyKey()] = true
	}
	s.mu.RUnlock()

	families := make([]string, 0, len(seen))
	for f := range seen {
		families = append(families, f)
	}
	sort.Strings(families)
	return families, nil
}

// lessVersion orders documents by parsed version number; unparseable
// numbers sort last, by raw string, so listings stay deterministic even
// with malformed data.
func lessVersion(a, b *recipe.Document) bool {
	va, errA := semver.Parse(a.Version.Number)
	vb, errB := semver.Parse(b.Version.Number)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		if a.Version.Number != b.Version.Number {
			return a.Version.Number < b.Version.Number
		}
		return a.ID < b.ID
	}
}

// MemoryDraftStore is the reference DraftStore.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewMemoryDraftStore returns an empty draft store.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*Draft)}
}

func (s *MemoryDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("get draft %q: %w", id, ErrDraftNotFound)
	}
	return d.Clone(), nil
}

func (s *MemoryDraftStore) Put(ctx context.Context, d *Draft) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("put draft: snapshot has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d.Clone()
	return nil
}

func (s *MemoryDraftStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// Len returns the number of stored drafts.
func (s *MemoryDraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}
