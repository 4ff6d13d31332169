package service

import (
	"testing"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

func entryPaths(entries []domain.MenuEntry) map[string]bool {
	paths := make(map[string]bool, len(entries))
	for _, e := range entries {
		paths[e.Path] = true
	}
	return paths
}

func TestMenuFor_Anonymous(t *testing.T) {
	svc := NewNavigationService()

	paths := entryPaths(svc.MenuFor(domain.Anonymous()))
	for _, want := range []string{domain.PathHome, domain.PathLogin, domain.PathRegister} {
		if !paths[want] {
			t.Fatalf("anonymous menu missing %s", want)
		}
	}
	if paths[domain.PathProfile] {
		t.Fatalf("anonymous menu shows profile")
	}
}

func TestMenuFor_Authenticated(t *testing.T) {
	svc := NewNavigationService()

	for _, role := range domain.Roles {
		identity, err := domain.NewIdentity("u", "u@x.com", role, "t1")
		if err != nil {
			t.Fatalf("NewIdentity: %v", err)
		}

		paths := entryPaths(svc.MenuFor(domain.Session{Identity: identity}))
		if paths[domain.PathLogin] || paths[domain.PathRegister] {
			t.Fatalf("%s menu still shows login/register", role)
		}
		if !paths[domain.PathProfile] {
			t.Fatalf("%s menu missing profile", role)
		}
		if !paths[domain.DashboardPath(role)] {
			t.Fatalf("%s menu missing own dashboard", role)
		}
		for _, other := range domain.Roles {
			if other != role && paths[domain.DashboardPath(other)] {
				t.Fatalf("%s menu shows %s dashboard", role, other)
			}
		}
	}
}
