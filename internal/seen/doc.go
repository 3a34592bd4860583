// Package seen persists the set of listing identifiers that have already
// been processed, matched or not, so the watcher never evaluates or
// notifies the same listing twice across restarts.
//
// The backing store is a flat JSON array of ids, sorted on
// write for diffability, written atomically via a temp file. A missing or
// corrupt file degrades to an empty set; a failed write degrades to a
// warning. The set grows without bound; that is an accepted limitation.
package seen
