// Package importer tracks asynchronous dictionary imports: it validates and
// submits the word list, then polls the server-side task until a terminal
// status, surfacing partial per-word failures without discarding detail.
package importer
