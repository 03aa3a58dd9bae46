// Package checkpoint persists the exclusion set that makes harvest runs
// resumable.
//
// The exclusion set is the only durable state the harvester owns. It is a flat
// list of refs that have already been handled, stored as a JSON file and
// rewritten in full after every retired ref. Saves are atomic (temp file plus
// rename), so killing the process mid-run loses at most the ref that was in
// flight. A missing or corrupt file loads as an empty set rather than failing
// the run.
package checkpoint
