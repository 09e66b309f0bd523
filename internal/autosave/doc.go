// Package autosave persists in-progress editor state as drafts, debounced
// per document id, and reconciles drafts with documents when an editor
// opens or closes.
//
// Saver is the background writer: edits for one id collapse into a single
// pending write that fires after a quiet interval; a new edit cancels and
// reschedules rather than queuing. Different ids are independent. Write
// failures are reported through callbacks and retried on the next tick,
// never immediately.
//
// EditorSession is the per-editor flow above the Saver: restore-or-not at
// open time, dirty tracking against the persisted document, and the
// discard / save-and-close / cancel-close decision when closing with
// unsaved changes. Sessions are single-editor state and not safe for
// concurrent use; the Saver underneath is.
package autosave
