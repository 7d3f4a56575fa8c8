// Package logging builds slog loggers for the recall client and defines the
// standardized structured field names shared across components.
package logging
