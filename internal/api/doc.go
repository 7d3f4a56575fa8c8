// Package api provides typed operations over the backend's wire contract:
// authentication, dictionary upload and status, and the learning endpoints.
// All calls flow through the gateway, which owns credential handling.
package api
