package service

import (
	"github.com/medicore/hospital-portal/internal/core/domain"
)

// NavigationService derives the menu shown by the navigation shell from the
// current session. Entries must always match session state: no Login link
// for an authenticated user, no dashboard link for a role the user lacks.
type NavigationService struct{}

func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

func (s *NavigationService) MenuFor(sess domain.Session) []domain.MenuEntry {
	if !sess.IsAuthenticated() {
		return []domain.MenuEntry{
			{Label: "Home", Path: domain.PathHome},
			{Label: "Login", Path: domain.PathLogin},
			{Label: "Register", Path: domain.PathRegister},
		}
	}

	return []domain.MenuEntry{
		{Label: "Home", Path: domain.PathHome},
		{Label: "Dashboard", Path: domain.DashboardPath(sess.Identity.Role)},
		{Label: "Profile", Path: domain.PathProfile},
		{Label: "Logout", Path: "/auth/logout"},
	}
}
