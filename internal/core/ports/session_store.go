package ports

import (
	"context"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// SessionStore is the single source of truth for the identity bound to each
// browser session.
type SessionStore interface {
	// Restore loads the persisted identity for sid, if any. A missing,
	// corrupted, or token-less record yields the anonymous session; Restore
	// never fails.
	Restore(ctx context.Context, sid string) domain.Session
	// Login binds identity to sid. The in-memory effect is immediate and
	// unconditional; the durable write is best-effort.
	Login(ctx context.Context, sid string, identity domain.Identity)
	// Logout clears sid from memory and storage. Idempotent.
	Logout(ctx context.Context, sid string)
	// Current reads the in-memory session for sid without touching storage.
	Current(sid string) domain.Session
}
