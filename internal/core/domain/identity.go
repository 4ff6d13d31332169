package domain

import "strings"

// Role is the flat permission label attached to an identity. The set is
// closed: there is no hierarchy and no inheritance, dashboards and gates
// compare against exactly one role.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RoleNurse   Role = "NURSE"
	RolePatient Role = "PATIENT"
)

// Roles enumerates every role the portal knows about.
var Roles = []Role{RoleAdmin, RoleDoctor, RoleNurse, RolePatient}

// ParseRole normalises a backend-provided role string into a Role.
// The backend is not consistent about casing, so matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether r is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RolePatient:
		return true
	}
	return false
}

// Identity is the signed-in user: profile plus the bearer token that proves
// it. An Identity without a token is not representable; construct through
// NewIdentity.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// NewIdentity builds an Identity, enforcing that a token is held and the
// role belongs to the closed set.
func NewIdentity(username, email string, role Role, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	return &Identity{
		Username: username,
		Email:    email,
		Role:     role,
		Token:    token,
	}, nil
}
