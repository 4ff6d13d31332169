package domain

// Session wraps zero-or-one Identity. Authentication state is derived from
// identity presence, never stored alongside it, so the two cannot disagree.
type Session struct {
	Identity *Identity
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// IsAuthenticated reports whether an identity is held.
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil
}

// HasRole reports whether the session is authenticated as the given role.
func (s Session) HasRole(role Role) bool {
	return s.Identity != nil && s.Identity.Role == role
}

// Token returns the held bearer token, or "" for anonymous sessions.
func (s Session) Token() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Token
}
