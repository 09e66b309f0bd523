// Package ledger implements the append-only version history arena.
//
// Entries are immutable once appended: the ledger deep-copies on the
// way in and on the way out, so no caller ever holds a reference into
// the arena. There is no update or delete operation.
//
// History reads apply a defensive sort by timestamp (entry id as the
// tiebreak) rather than trusting insertion order. Wall-clock skew
// between writers can still interleave entries surprisingly; that is a
// documented limitation, not something the ledger corrects.
package ledger
