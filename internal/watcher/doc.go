// Package watcher runs the polling loop: for each configured search it
// fetches the newest listings, drops already-seen and stale ones,
// evaluates the remaining listings against the search rules, notifies
// matches, and persists the seen set when a cycle produced any. Everything
// is sequential; the loop sleeps with jitter between cycles and never
// terminates on its own. A file lock enforces a single running instance so
// two processes cannot double-notify.
package watcher
