package domain

import "time"

// SessionTTL is how long a login remains valid before the console forces a
// fresh login.
const SessionTTL = 7 * 24 * time.Hour

// Session is the console's login state: who is signed in and since when.
// It is carried explicitly through the services that need an actor name
// rather than read ad hoc from a global.
type Session struct {
	FullName   string
	LoggedInAt time.Time
}

// Expired reports whether the session is older than ttl at the given time.
// A session exactly ttl old is still valid.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoggedInAt) > ttl
}

// Authenticated reports whether the session represents a logged-in operator.
func (s Session) Authenticated() bool {
	return s.FullName != ""
}
