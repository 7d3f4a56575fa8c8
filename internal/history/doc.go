// Package history keeps a client-local log of review outcomes and sittings
// in SQLite, independent of the server-side schedule. It exists so `recall
// stats` can show progress even when the backend is unreachable.
package history
