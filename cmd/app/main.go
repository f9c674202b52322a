// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bayusbkt/patungan-bay/internal/config"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/adapter"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
	pg "github.com/bayusbkt/patungan-bay/internal/infra/db/postgres"
	"github.com/bayusbkt/patungan-bay/internal/infra/logging"
	"github.com/bayusbkt/patungan-bay/internal/infra/metrics"
	"github.com/bayusbkt/patungan-bay/internal/infra/notify"
	red "github.com/bayusbkt/patungan-bay/internal/infra/redis"
	"github.com/bayusbkt/patungan-bay/internal/infra/sched"
	"github.com/bayusbkt/patungan-bay/internal/infra/web"
	"github.com/bayusbkt/patungan-bay/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Repositories ----
	var productRepo repository.ProductRepository = pg.NewProductRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	groupRepo := pg.NewGroupRepo(pool)
	txm := pg.NewTxManager(pool)

	// ---- Redis (optional; catalog reads degrade to direct queries) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, product cache disabled")
		} else {
			defer redisClient.Close()
			productRepo = pg.NewProductRepoCacheDecorator(productRepo, redisClient, cfg.Redis.TTL)
		}
	}

	// ---- Notifier ----
	var notifier adapter.ApprovalNotifier = notify.NewNoopNotifier()
	if cfg.Notifier.WebhookURL != "" {
		wh, err := notify.NewWebhookNotifier(cfg.Notifier.WebhookURL, cfg.Notifier.Timeout)
		if err != nil {
			logger.Fatal().Err(err).Msg("webhook notifier")
		}
		notifier = wh
	}
	logger.Info().Str("notifier", notifier.Name()).Msg("approval notifier configured")

	// ---- Use cases ----
	pricingUC := usecase.NewPricingUseCase(cfg.Billing.TaxRate, logger)
	catalogUC := usecase.NewCatalogUseCase(productRepo, pricingUC, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, productRepo, pricingUC, notifier, cfg.Billing.TrxPrefix, logger)
	allocUC := usecase.NewAllocatorUseCase(groupRepo, subRepo, productRepo, txm, logger)
	groupUC := usecase.NewGroupUseCase(groupRepo, logger)
	statsUC := usecase.NewStatsUseCase(subRepo, groupRepo, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, "", cfg.Admin.SessionTTL)
	srv := web.NewServer(catalogUC, subUC, allocUC, groupUC, statsUC, auth, cfg.Admin.Secret, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Gauge worker ----
	worker := sched.NewGaugeWorker(time.Minute, subRepo, groupRepo, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
