// Package identity provides the identity and clock source consumed by
// the engine and the ledger: who is acting, what time it is, and fresh
// ids for new versions and ledger entries.
//
// Production code uses SystemSource; tests substitute deterministic
// implementations from internal/testutil.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Source supplies the author id and wall-clock timestamps stamped onto
// ledger entries and version metadata.
type Source interface {
	AuthorID() string
	Now() time.Time
}

// IDGenerator mints ids for new versions and ledger entries.
type IDGenerator interface {
	NewID() string
}

// SystemSource is the production Source: a fixed author id (the local
// profile) and the system clock in UTC.
type SystemSource struct {
	Author string
}

func (s SystemSource) AuthorID() string { return s.Author }

func (s SystemSource) Now() time.Time { return time.Now().UTC() }

// UUIDv7Generator mints time-sortable UUIDv7 ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so version
// and entry ids sort by creation time. That property doubles as the
// ledger's tiebreak for equal timestamps.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// NewID creates a new UUIDv7 as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
