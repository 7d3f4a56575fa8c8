// Package main hosts the recall CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against the vocabulary backend: authentication, dictionary listing, word
// list imports with progress tracking, flashcard review sittings, and
// statistics. It centralizes configuration resolution, session wiring, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package thin: new behavior belongs in the internal packages
// first, surfaced here through a dedicated command or flag.
package main
