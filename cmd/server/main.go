package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/dahira/internal/auth"
	"github.com/mmynk/dahira/internal/config"
	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/metrics"
	"github.com/mmynk/dahira/internal/report"
	"github.com/mmynk/dahira/internal/server"
	"github.com/mmynk/dahira/internal/service"
	"github.com/mmynk/dahira/internal/storage/cache"
	"github.com/mmynk/dahira/internal/storage/sqlite"
	"github.com/mmynk/dahira/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Configure(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	m := metrics.New()

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	store := cache.New(db,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithHooks(m.CacheHit, m.CacheMiss, m.CacheInvalidated),
	)
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath, "cache_ttl", cfg.CacheTTL)

	authenticator := auth.NewPasswordAuthenticator(db)
	if cfg.SeedDemoUsers {
		if err := auth.SeedUsers(ctx, authenticator, auth.DemoUsers); err != nil {
			return err
		}
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	l := ledger.New(store)
	if err := l.EnsureSecurityCodes(ctx, cfg.ArchiveCode, cfg.ResetCode); err != nil {
		return err
	}

	assembler := report.NewAssembler(l, store)
	var pdf report.PDFRenderer
	if cfg.PDFEnabled() {
		gotenberg := report.NewGotenbergClient(cfg.GotenbergURL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := gotenberg.Ping(pingCtx); err != nil {
			slog.Warn("Gotenberg not reachable; PDF reports will fail until it is", "url", cfg.GotenbergURL, "error", err)
		}
		cancel()
		pdf = gotenberg
	} else {
		slog.Info("GOTENBERG_URL not set; PDF reports disabled")
	}

	router := server.NewRouter(server.RouterParams{
		JWTManager: jwtManager,
		Metrics:    m,
		Reports:    report.NewRenderer(assembler, pdf),
		Services: []server.Mount{
			service.NewAuthService(authenticator, jwtManager, db, slog.Default()).Handler,
			service.NewMemberService(store).Handler,
			service.NewCommissionService(store).Handler,
			service.NewEventService(store).Handler,
			service.NewFinanceService(l, m).Handler,
			service.NewReportService(l, assembler).Handler,
			service.NewAdminService(l).Handler,
		},
		LoginRateLimit: cfg.LoginRateLimit,
		CORSOrigins:    cfg.CORSOrigins,
	})

	return server.Run(ctx, server.New(cfg, router), cfg.ShutdownTimeout)
}
