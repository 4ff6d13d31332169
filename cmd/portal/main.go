package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medicore/hospital-portal/internal/api"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/infrastructure/backend"
	redisdb "github.com/medicore/hospital-portal/internal/infrastructure/db/redis"
	"github.com/medicore/hospital-portal/internal/infrastructure/session"
	"github.com/medicore/hospital-portal/internal/pkg/config"
	"github.com/medicore/hospital-portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis being down is survivable: sessions degrade to memory-only and
	// logins keep working for the life of the process.
	var persist session.Persistence
	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, sessions held in memory only")
		rdb = nil
	} else {
		persist = session.NewRedisPersistence(rdb, cfg.Session.TTL)
		defer rdb.Close()
	}

	store := session.NewStore(persist, log)
	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	navigator := service.NewNavigationService()

	janitor := session.NewJanitor(store, gateway, cfg.Session.VerifyInterval, log)
	janitor.Start(ctx)

	e, err := api.NewRouter(api.RouterConfig{
		Store:          store,
		Gateway:        gateway,
		Navigator:      navigator,
		Redis:          rdb,
		BackendBaseURL: cfg.Backend.BaseURL,
		Logger:         log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("portal started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
