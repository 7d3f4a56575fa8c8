// Package session persists the learner's access credential pair and cached
// identity between CLI invocations.
package session
