// Package notify delivers match alerts via Telegram.
//
// The default implementation posts to the Telegram bot API using the token
// and chat id from the configuration. When credentials are missing the
// constructor returns a local-log implementation instead, so the watcher
// runs unchanged with alerts landing in the log stream. Delivery failures
// are returned for the caller to log; they never stop the loop.
package notify
