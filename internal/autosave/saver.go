package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Aval1099/birch-lounge-app-sub000/internal/recipe"
	"github.com/Aval1099/birch-lounge-app-sub000/internal/store"
)

// DefaultDebounce is the quiet interval before a pending edit is written.
const DefaultDebounce = 2 * time.Second

// State describes where an id's autosave currently stands.
type State string

const (
	// StateIdle : nothing pending; the last write, if any, succeeded.
	StateIdle State = "idle"
	// StatePending : an edit is captured and its write is scheduled.
	StatePending State = "pending"
	// StateSaving : a write is in flight.
	StateSaving State = "saving"
	// StateError : the last write failed; the snapshot is kept and
	// retried on the next tick.
	StateError State = "error"
	// StateDisabled : the saver is disabled or closed; edits are not
	// captured.
	StateDisabled State = "disabled"
)

// Status is the autosave indicator surface for one id.
type Status struct {
	State             State
	LastSaved         time.Time
	HasUnsavedChanges bool
	Err               error
}

// Callbacks are the lifecycle hooks around each draft write. All are
// optional and are invoked outside the saver's lock.
type Callbacks struct {
	OnSaveStart   func(id string)
	OnSaveSuccess func(id string, at time.Time)
	OnSaveError   func(id string, err error)
}

// Saver debounces full-snapshot draft writes per document id.
//
// Each id carries at most one pending snapshot; a new edit replaces the
// old snapshot and restarts the quiet interval. Writes for one id never
// overlap: whoever claims the pending snapshot writes it, and anyone
// else waits for that write to finish before re-checking. Different ids
// save independently. All methods are safe for concurrent use.
type Saver struct {
	drafts      store.DraftStore
	debounce    time.Duration
	enabled     bool
	skipInitial bool
	callbacks   Callbacks

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

// entry is the per-id autosave record. Guarded by Saver.mu except for
// done, which is written at claim time and closed when the claimed
// write finishes.
type entry struct {
	timer     *time.Timer
	pending   *recipe.FormState
	state     State
	lastSaved time.Time
	dirty     bool
	err       error
	sawFirst  bool
	writing   bool
	done      chan struct{}
}

// Option configures a Saver.
type Option func(*Saver)

// WithDebounce sets the quiet interval. Non-positive values keep the
// default.
func WithDebounce(d time.Duration) Option {
	return func(s *Saver) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithEnabled turns autosave on or off. A disabled saver ignores every
// Save call.
func WithEnabled(enabled bool) Option {
	return func(s *Saver) { s.enabled = enabled }
}

// WithSkipInitial suppresses the first Save per id. Editors fire a save
// on mount before any real edit; skipping it keeps pristine documents
// out of the draft store.
func WithSkipInitial(skip bool) Option {
	return func(s *Saver) { s.skipInitial = skip }
}

// WithCallbacks installs the write lifecycle hooks.
func WithCallbacks(cb Callbacks) Option {
	return func(s *Saver) { s.callbacks = cb }
}

// New creates a Saver over a draft store. Autosave is enabled by
// default with DefaultDebounce.
func New(drafts store.DraftStore, opts ...Option) *Saver {
	s := &Saver{
		drafts:   drafts,
		debounce: DefaultDebounce,
		enabled:  true,
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save captures the current form state for an id and (re)schedules its
// debounced write. The snapshot is cloned in, so the caller can keep
// mutating the form. Returns the id's status after scheduling.
func (s *Saver) Save(id string, state *recipe.FormState) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.closed {
		return Status{State: StateDisabled}
	}

	ent := s.entries[id]
	if ent == nil {
		ent = &entry{state: StateIdle}
		s.entries[id] = ent
	}

	if s.skipInitial && !ent.sawFirst {
		ent.sawFirst = true
		return statusOf(ent)
	}
	ent.sawFirst = true

	ent.pending = state.Clone()
	ent.dirty = true
	s.scheduleLocked(id, ent)
	return statusOf(ent)
}

// Status returns the autosave indicator for an id. Unknown ids are
// idle.
func (s *Saver) Status(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.closed {
		return Status{State: StateDisabled}
	}
	ent := s.entries[id]
	if ent == nil {
		return Status{State: StateIdle}
	}
	return statusOf(ent)
}

// Flush writes the pending snapshot for an id immediately, cancelling
// its timer. No pending snapshot is a no-op. If a write for the id is
// already in flight, Flush waits for it and then writes whatever is
// still pending.
func (s *Saver) Flush(ctx context.Context, id string) error {
	return s.flush(ctx, id)
}

// Cancel drops any pending write and forgets the id. An in-flight write
// is allowed to complete but no longer updates the saver's state.
func (s *Saver) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent := s.entries[id]
	if ent == nil {
		return
	}
	if ent.timer != nil {
		ent.timer.Stop()
	}
	delete(s.entries, id)
}

// Close cancels every pending write and stops accepting new ones.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ent := range s.entries {
		if ent.timer != nil {
			ent.timer.Stop()
		}
	}
	s.entries = make(map[string]*entry)
	s.closed = true
}

// scheduleLocked (re)arms the id's timer. Caller holds s.mu.
func (s *Saver) scheduleLocked(id string, ent *entry) {
	if ent.timer != nil {
		ent.timer.Stop()
	}
	ent.timer = time.AfterFunc(s.debounce, func() {
		// The editing context is long gone when a debounced write
		// fires, so ticks write on the background context.
		_ = s.flush(context.Background(), id)
	})
	if !ent.writing {
		ent.state = StatePending
	}
}

// flush claims the id's pending snapshot and writes it. Loops until the
// snapshot is claimed, there is nothing to write, or ctx expires.
func (s *Saver) flush(ctx context.Context, id string) error {
	for {
		s.mu.Lock()
		if !s.enabled || s.closed {
			s.mu.Unlock()
			return nil
		}
		ent := s.entries[id]
		if ent == nil || ent.pending == nil {
			s.mu.Unlock()
			return nil
		}
		if ent.writing {
			done := ent.done
			s.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		if ent.timer != nil {
			ent.timer.Stop()
			ent.timer = nil
		}
		snapshot := ent.pending
		done := make(chan struct{})
		ent.writing = true
		ent.done = done
		ent.state = StateSaving
		s.mu.Unlock()

		err := s.write(ctx, id, ent, snapshot)
		close(done)
		return err
	}
}

// write performs one draft write and settles the id's state. Snapshot
// identity decides whether pending clears: an edit that arrived during
// the write keeps its own newer snapshot and timer.
func (s *Saver) write(ctx context.Context, id string, ent *entry, snapshot *recipe.FormState) error {
	if s.callbacks.OnSaveStart != nil {
		s.callbacks.OnSaveStart(id)
	}

	now := time.Now().UTC()
	err := s.drafts.Put(ctx, &store.Draft{ID: id, State: *snapshot, SavedAt: now})

	var wrapped error
	if err != nil {
		wrapped = fmt.Errorf("%w: %v", recipe.ErrDraftWriteFailure, err)
	}

	s.mu.Lock()
	if s.entries[id] == ent {
		// A Cancel or Close during the write orphans ent; only settle
		// state while it is still the live record for the id.
		ent.writing = false
		if err != nil {
			if ent.pending == snapshot {
				// Retry on the next tick only, never immediately.
				s.scheduleLocked(id, ent)
			}
			ent.state = StateError
			ent.err = wrapped
		} else {
			ent.lastSaved = now
			ent.err = nil
			if ent.pending == snapshot {
				ent.pending = nil
				ent.dirty = false
				ent.state = StateIdle
			} else {
				ent.state = StatePending
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		slog.Warn("draft write failed", "id", id, "error", err)
		if s.callbacks.OnSaveError != nil {
			s.callbacks.OnSaveError(id, err)
		}
		return wrapped
	}

	slog.Debug("draft written", "id", id, "saved_at", now)
	if s.callbacks.OnSaveSuccess != nil {
		s.callbacks.OnSaveSuccess(id, now)
	}
	return nil
}

// statusOf snapshots an entry's status. Caller holds s.mu.
func statusOf(ent *entry) Status {
	return Status{
		State:             ent.state,
		LastSaved:         ent.lastSaved,
		HasUnsavedChanges: ent.dirty,
		Err:               ent.err,
	}
}
