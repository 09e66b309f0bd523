// Package engine implements the version lifecycle state machine and the
// operation surface the presentation layer calls: compare, branch,
// publish, archive, restore, merge, promote, history.
//
// The engine owns every ledger write. Each lifecycle transition appends
// exactly one history entry with the matching action; no other component
// writes the ledger. Stores are injected and treated as plain key-value
// surfaces; the engine enforces the rules.
//
// Concurrency: operations are safe for concurrent use as long as the
// injected stores are. Multi-version updates (main-version promotion,
// merge) serialize through a single in-process mutex, so interleaved
// promotions cannot leave a family with zero or two main versions.
package engine
