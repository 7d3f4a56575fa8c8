// Package config loads, normalizes, and validates recall's TOML configuration.
package config
