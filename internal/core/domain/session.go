package domain

// SessionData is the server-held session record referenced by the session
// cookie. The account copy mirrors the token claims so identity survives a
// client that stops presenting the token.
type SessionData struct {
	LoggedIn bool           `json:"loggedin"`
	Account  *AccountClaims `json:"account_data,omitempty"`
	Flashes  []string       `json:"flashes,omitempty"`
}

// Empty reports whether the record carries nothing worth persisting.
func (s *SessionData) Empty() bool {
	return !s.LoggedIn && s.Account == nil && len(s.Flashes) == 0
}
