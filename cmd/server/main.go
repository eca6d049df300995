package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"workhive/internal/audit"
	"workhive/internal/closure"
	"workhive/internal/closure/cache"
	"workhive/internal/closure/handler"
	"workhive/internal/closure/metrics"
	closureservice "workhive/internal/closure/service"
	"workhive/internal/closure/sweeper"
	"workhive/internal/contracts"
	"workhive/internal/documents"
	"workhive/internal/expenses"
	httpapi "workhive/internal/http"
	"workhive/internal/marketing"
	"workhive/internal/organization"
	"workhive/internal/platform/config"
	"workhive/internal/platform/httpserver"
	"workhive/internal/platform/logger"
	"workhive/internal/platform/middleware"
	"workhive/internal/platform/postgres"
	platformredis "workhive/internal/platform/redis"
	"workhive/internal/project"
	"workhive/internal/wallet"
)

// main is the composition root: every store, checker, and service is built
// and wired here, then handed to the HTTP layer and the background sweeper.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	orgs := organization.NewPostgresStore(pool)
	orgArchives := organization.NewPostgresArchiveStore(pool)
	projects := project.NewPostgresStore(pool)
	contractStore := contracts.NewPostgresStore(pool)
	expenseStore := expenses.NewPostgresStore(pool)
	walletStore := wallet.NewPostgresStore(pool)
	docStore := documents.NewPostgresStore(pool)
	docArchives := documents.NewPostgresArchiveStore(pool)

	m := metrics.New()

	registry := closure.NewRegistry(
		closure.WithLogger(log),
		closure.WithMetrics(m),
		closure.WithCheckTimeout(10*time.Second),
	)
	registry.Register(contracts.NewChecker(contractStore))
	registry.Register(expenses.NewChecker(expenseStore, projects))
	registry.Register(wallet.NewChecker(walletStore))
	registry.Register(documents.NewChecker(docStore, docArchives, projects, orgArchives))
	registry.Register(marketing.NewChecker())

	impact := closureservice.NewImpactCounter(orgs, projects, docStore, expenseStore)

	// Project-scoped purgers must run before the project purger drops the
	// project rows they key on.
	purgers := []closureservice.LivePurger{
		expenses.NewPurger(expenseStore, projects),
		documents.NewPurger(docStore, projects),
		project.NewPurger(projects),
		wallet.NewPurger(walletStore),
		contracts.NewPurger(contractStore),
		organization.NewPurger(orgs),
	}

	opts := []closureservice.Option{
		closureservice.WithLogger(log),
		closureservice.WithMetrics(m),
		closureservice.WithRetention(cfg.RetentionPeriod),
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("kafka audit publisher failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafkaPublisher.Close(closeCtx); err != nil {
				log.Error("audit publisher close failed", "error", err)
			}
		}()
		opts = append(opts, closureservice.WithAuditPublisher(kafkaPublisher))
	} else {
		log.Warn("kafka brokers not configured, audit events stay in memory")
		opts = append(opts, closureservice.WithAuditPublisher(audit.NewPublisher(audit.NewMemoryStore())))
	}

	if redisClient != nil {
		opts = append(opts, closureservice.WithPreviewCache(
			cache.NewPreviewCache(redisClient, cfg.PreviewCacheTTL)))
	}

	svc := closureservice.New(registry, orgs, orgArchives, impact, purgers, opts...)

	go func() {
		s := sweeper.New(svc, cfg.SweepInterval, log)
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("sweeper stopped", "error", err)
		}
	}()

	closureHandler := handler.New(svc, log, middleware.NewHMACValidator(cfg.JWTSigningKey))

	health := map[string]httpapi.HealthChecker{
		"postgres": poolHealth{pool},
	}
	if redisClient != nil {
		health["redis"] = redisClient
	}

	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(closureHandler, health))

	go func() {
		log.Info("closure service listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

type poolHealth struct {
	pool *pgxpool.Pool
}

func (p poolHealth) Health(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
