package ledger

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"
)

// Entry is one immutable history record for a version.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	VersionID string    `json:"version_id" yaml:"version_id"`
	Action    Action    `json:"action" yaml:"action"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	AuthorID  string    `json:"author_id,omitempty" yaml:"author_id,omitempty"`

	// Changes are human-readable change summaries, in display order.
	Changes []string `json:"changes,omitempty" yaml:"changes,omitempty"`

	// PreviousVersionID links a branched entry to its parent version.
	PreviousVersionID string `json:"previous_version_id,omitempty" yaml:"previous_version_id,omitempty"`

	// Metadata carries small operation-specific facts, such as the
	// merged version id on a merged entry.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (e Entry) clone() Entry {
	e.Changes = slices.Clone(e.Changes)
	if e.Metadata != nil {
		e.Metadata = maps.Clone(e.Metadata)
	}
	return e
}

// Ledger is the in-memory arena of history entries, indexed by version
// family key.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string][]Entry)}
}

// Append adds an entry to a family's history. The entry is copied in;
// the caller's value stays the caller's.
func (l *Ledger) Append(family string, e Entry) error {
	if family == "" {
		return fmt.Errorf("ledger append: empty family key")
	}
	if e.ID == "" {
		return fmt.Errorf("ledger append: entry has no id")
	}
	if !e.Action.Valid() {
		return fmt.Errorf("ledger append: unknown action %q", e.Action)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[family] = append(l.entries[family], e.clone())
	return nil
}

// History returns a family's entries sorted by timestamp ascending,
// entry id as the tiebreak. The result is a deep copy; an unknown
// family yields an empty history.
func (l *Ledger) History(family string) []Entry {
	l.mu.RLock()
	stored := l.entries[family]
	out := make([]Entry, len(stored))
	for i, e := range stored {
		out[i] = e.clone()
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the number of entries recorded for a family.
func (l *Ledger) Count(family string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries[family])
}

// Families returns the family keys with at least one entry, sorted.
func (l *Ledger) Families() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a deep copy of the whole arena, keyed by family, in
// insertion order. Tool layers persist this; the ledger itself does
// not do I/O.
func (l *Ledger) Snapshot() map[string][]Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string][]Entry, len(l.entries))
	for family, stored := range l.entries {
		copied := make([]Entry, len(stored))
		for i, e := range stored {
			copied[i] = e.clone()
		}
		out[family] = copied
	}
	return out
}

// Load builds a ledger from a snapshot, copying every entry in.
func Load(snapshot map[string][]Entry) *Ledger {
	l := New()
	for family, entries := range snapshot {
		copied := make([]Entry, len(entries))
		for i, e := range entries {
			copied[i] = e.clone()
		}
		l.entries[family] = copied
	}
	return l
}
