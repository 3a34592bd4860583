// Package vinted fetches catalog search results from the Vinted JSON
// endpoint used by its web app. There is no official public API: the
// client sends browser-like headers to reduce the chance of rejection and
// tolerates varying response shapes, since fields come and go. All
// failures are returned to the caller as errors; the watcher decides to
// log and continue.
package vinted
