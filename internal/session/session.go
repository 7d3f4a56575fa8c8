package session

// User is the cached identity of the authenticated learner.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Session holds the access credential pair and cached identity. A present
// User implies the access token was valid at least once; the zero value is
// the logged-out state.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// Authenticated reports whether the session carries an access credential.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
