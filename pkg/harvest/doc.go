// Package harvest implements the resumable traversal at the heart of the
// fetcher.
//
// A traversal run takes a universe of refs, subtracts the refs already
// retired in the persisted exclusion set, and processes the remainder
// strictly one at a time. Each attempt produces exactly one Outcome:
//
//   - Success: artifacts were written; the ref is retired.
//   - PermanentSkip: the item itself is unusable (gone, forbidden, or
//     malformed content); the ref is retired without artifacts.
//   - TransientSkip: something that may be temporary went wrong; the ref
//     stays pending and is attempted again on the next run.
//
// Retired refs are flushed to the checkpoint store before the next ref
// begins, so a crash or rate-limit kill loses at most the in-flight item.
// Runs are idempotent: repeating a finished run processes nothing.
package harvest
