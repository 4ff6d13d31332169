// Package session implements the portal's session store: the single source
// of truth for the identity bound to each browser session, with durable
// persistence across portal restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// ErrNotFound is returned by a Persistence when no record exists for a key.
var ErrNotFound = errors.New("session record not found")

// Persistence is the durable medium behind the in-memory store. One record
// per session ID, written whole; last write wins. A nil Persistence leaves
// the store memory-only (degraded mode).
type Persistence interface {
	Load(ctx context.Context, sid string) ([]byte, error)
	Save(ctx context.Context, sid string, record []byte) error
	Delete(ctx context.Context, sid string) error
}

// Store keeps the identity for each session in memory and writes through to
// the configured Persistence. Mutations take effect in memory synchronously,
// so authenticated state and identity can never disagree; the durable write
// is best-effort and its failure degrades persistence, not the login.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Identity
	persist  Persistence
	log      zerolog.Logger
}

func NewStore(persist Persistence, log zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*domain.Identity),
		persist:  persist,
		log:      log,
	}
}

// Restore loads the session for sid, consulting the in-memory cache first
// and the durable record second. Anything unreadable is treated as "no
// session": Restore never fails.
func (s *Store) Restore(ctx context.Context, sid string) domain.Session {
	s.mu.RLock()
	identity, ok := s.sessions[sid]
	s.mu.RUnlock()
	if ok {
		return domain.Session{Identity: identity}
	}

	if s.persist == nil {
		return domain.Anonymous()
	}

	record, err := s.persist.Load(ctx, sid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Msg("session restore failed, treating as anonymous")
		}
		return domain.Anonymous()
	}

	restored, err := decodeRecord(record)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding corrupted session record")
		_ = s.persist.Delete(ctx, sid)
		return domain.Anonymous()
	}

	s.mu.Lock()
	s.sessions[sid] = restored
	s.mu.Unlock()

	return domain.Session{Identity: restored}
}

// Login binds identity to sid. The in-memory write always succeeds; a
// persistence failure is logged and the session lives on memory-only.
func (s *Store) Login(ctx context.Context, sid string, identity domain.Identity) {
	s.mu.Lock()
	s.sessions[sid] = &identity
	s.mu.Unlock()

	if s.persist == nil {
		return
	}

	record, err := json.Marshal(identity)
	if err != nil {
		s.log.Warn().Err(err).Msg("session not persisted")
		return
	}
	if err := s.persist.Save(ctx, sid, record); err != nil {
		s.log.Warn().Err(err).Str("username", identity.Username).
			Msg("session persisted in memory only")
	}
}

// Logout clears sid. Safe to call for a session that is already logged out.
func (s *Store) Logout(ctx context.Context, sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()

	if s.persist == nil {
		return
	}
	if err := s.persist.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Msg("durable session record not removed")
	}
}

// Current reads the in-memory session for sid. Never blocks on storage.
func (s *Store) Current(sid string) domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if identity, ok := s.sessions[sid]; ok {
		return domain.Session{Identity: identity}
	}
	return domain.Anonymous()
}

// tokens snapshots the cached sessions for the janitor sweep.
func (s *Store) tokens() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.sessions))
	for sid, identity := range s.sessions {
		out[sid] = identity.Token
	}
	return out
}

// decodeRecord parses a persisted identity and re-checks the invariants a
// valid record must hold. Records that predate a role rename, were written
// by hand, or lost their token are rejected rather than trusted.
func decodeRecord(record []byte) (*domain.Identity, error) {
	var identity domain.Identity
	if err := json.Unmarshal(record, &identity); err != nil {
		return nil, err
	}
	return domain.NewIdentity(identity.Username, identity.Email, identity.Role, identity.Token)
}
