package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/api/metrics"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// Janitor opportunistically re-validates cached session tokens against the
// backend and logs out sessions whose token is no longer accepted. The sweep
// is never required for navigation; guards consult only the store.
type Janitor struct {
	store    *Store
	gateway  ports.AuthGateway
	interval time.Duration
	log      zerolog.Logger
}

// NewJanitor creates a Janitor sweeping every interval. An interval <= 0
// disables the sweep entirely.
func NewJanitor(store *Store, gateway ports.AuthGateway, interval time.Duration, log zerolog.Logger) *Janitor {
	return &Janitor{store: store, gateway: gateway, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	if j.interval <= 0 {
		return
	}
	go j.run(ctx)
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// sweep checks every cached token once. Verification errors are skipped,
// not treated as invalid: an unreachable backend must not log anyone out.
func (j *Janitor) sweep(ctx context.Context) {
	for sid, token := range j.store.tokens() {
		valid, err := j.gateway.VerifyToken(ctx, token)
		if err != nil {
			j.log.Debug().Err(err).Msg("token verification skipped")
			continue
		}
		if !valid {
			j.store.Logout(ctx, sid)
			metrics.SessionsEvictedTotal.Inc()
			j.log.Info().Msg("session evicted, backend rejected token")
		}
	}
}
