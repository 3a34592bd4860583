// Package main hosts the chine CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, sets up structured
// logging, and starts the polling watcher. Utility subcommands cover
// configuration scaffolding and inspection, listing the configured searches,
// and sending a test notification.
//
// Keep this package lean: the watcher, rules, and transport logic live in
// the internal packages and are surfaced here through thin commands.
package main
