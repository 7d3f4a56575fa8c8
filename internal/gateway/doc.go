// Package gateway is the authenticated request layer between the client and
// the vocabulary backend.
//
// Every outbound call flows through Client.Do, which attaches the current
// access credential, unwraps the backend's response envelope, and resolves
// credential expiry transparently: a 401 triggers at most one renewal via the
// stored refresh token followed by at most one replay of the original
// request. Renewal failure clears the session store so callers can redirect
// to login. All other failures surface unmodified; retry policy for those
// belongs to higher layers.
package gateway
