package ports

import (
	"context"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// AuthGateway performs the credential exchanges that produce or invalidate
// an Identity against the hospital backend. It never owns session state.
type AuthGateway interface {
	// Register creates an account and returns the backend confirmation
	// message. Registration does not sign the user in.
	Register(ctx context.Context, username, email, password string) (string, error)
	// Login exchanges credentials for an Identity including its token.
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	// Logout notifies the backend, best-effort. A failure here must not
	// block local logout.
	Logout(ctx context.Context, token string) error
	// VerifyToken reports whether the backend still accepts the token.
	VerifyToken(ctx context.Context, token string) (bool, error)
	// RefreshToken exchanges the current token for a fresh one.
	RefreshToken(ctx context.Context, token string) (string, error)
}
