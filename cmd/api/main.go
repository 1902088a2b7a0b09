package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-manager/internal/db"
	"github.com/BruksfildServices01/barbershop-manager/internal/idempotency"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/oidc"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
	"github.com/BruksfildServices01/barbershop-manager/internal/routes"
	"github.com/BruksfildServices01/barbershop-manager/internal/session"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{
		DB:          db,
		Config:      cfg,
		Audit:       audit.NewDispatcher(audit.New(db), log),
		Sessions:    session.NewManager(cfg.JWTSecret, cfg.SessionTTL),
		RateLimiter: middleware.NewRateLimiter(cfg.PublicRateLimitRequests, cfg.PublicRateLimitWindow),
		Payments:    payments.Disabled{},
	}
	defer deps.Audit.Close()

	// ------------------------------
	// Optional integrations
	// ------------------------------
	if cfg.Redis.URL != "" {
		store, err := idempotency.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer store.Close()
		deps.Idempotency = store
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency keys kept in memory")
		store := idempotency.NewMemoryStore()
		go store.Janitor(ctx, time.Minute)
		deps.Idempotency = store
	}

	if cfg.S3.Enabled() {
		deps.Uploader = storage.NewS3Uploader(cfg.S3)
	} else {
		log.Warn().Msg("S3_BUCKET not set, logo upload disabled")
	}

	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken, cfg.MercadoPagoNotifyURL)
		if err != nil {
			log.Fatal().Err(err).Msg("mercadopago setup failed")
		}
		deps.Payments = mp
	}

	if cfg.OIDC.Enabled() {
		discovery := oidc.NewDiscoveryCache(
			oidc.HTTPFetcher(&http.Client{Timeout: 10 * time.Second}, cfg.OIDC.IssuerURL),
			cfg.DiscoveryCacheTTL,
			log,
		)
		deps.OIDC = oidc.NewClient(oidc.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
		}, discovery)
	}

	go deps.RateLimiter.Janitor(ctx, time.Minute)

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := routes.NewEngine(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid trusted proxies")
	}

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
