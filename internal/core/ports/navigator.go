package ports

import "github.com/medicore/hospital-portal/internal/core/domain"

// Navigator computes the navigation affordances visible to a session.
type Navigator interface {
	MenuFor(s domain.Session) []domain.MenuEntry
}
