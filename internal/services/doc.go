// Package services defines shared utilities consumed by the client
// subsystems (gateway, importer, review).
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep the failure
//     taxonomy (validation, auth, transient) uniform across components.
//   - Context helpers that stamp request correlation identifiers for logging.
package services
