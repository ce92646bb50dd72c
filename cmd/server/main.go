// Command server runs the risk categorization HTTP service.
//
// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"riskengine/internal/audit"
	"riskengine/internal/classifier"
	classifierhandler "riskengine/internal/classifier/handler"
	"riskengine/internal/classifier/metrics"
	"riskengine/internal/classifier/store"
	httpapi "riskengine/internal/http"
	"riskengine/internal/jwttoken"
	"riskengine/internal/platform/config"
	"riskengine/internal/platform/httpserver"
	"riskengine/internal/platform/logger"
	platformredis "riskengine/internal/platform/redis"
	"riskengine/internal/rulepack"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pack, err := loadPack(cfg, log)
	if err != nil {
		return err
	}

	decisions, closeDB, err := buildDecisionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	m := metrics.New()
	service, err := classifier.NewService(pack, decisions, log, m)
	if err != nil {
		return err
	}

	checks := map[string]httpapi.HealthChecker{}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		service.WithCache(store.NewRedisCache(redisClient.Client, cfg.Redis.DecisionTTL))
		checks["redis"] = redisClient
		log.Info("decision cache enabled", "ttl", cfg.Redis.DecisionTTL)
	}

	sink, closeSink, err := buildAuditSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSink()

	publisher := audit.NewPublisher(1024, func(event audit.Event) {
		log.Warn("audit inbox full, event dropped", "assessment_id", event.AssessmentID)
	})
	service.WithAudit(publisher)

	worker := audit.NewWorker(sink, publisher.Inbox(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	router := httpapi.NewRouter(httpapi.Deps{
		Classifier:      classifierhandler.New(service, log),
		Validator:       jwttoken.NewJWTServiceAdapter(jwtService),
		Logger:          log,
		Checks:          checks,
		RulepackVersion: pack.Version,
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting riskengine", "addr", cfg.Addr, "rulepack_version", pack.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func loadPack(cfg config.Config, log *slog.Logger) (*rulepack.Pack, error) {
	pack := rulepack.Default()
	if cfg.RulepackPath == "" {
		log.Info("no rulepack configured, using built-in pack")
	} else {
		var err error
		if pack, err = rulepack.Load(cfg.RulepackPath); err != nil {
			return nil, err
		}
		log.Info("rulepack loaded", "path", cfg.RulepackPath, "version", pack.Version)
	}
	if err := pack.Override(cfg.Rules.MaybePenalty, cfg.Rules.FollowUpPenalty, cfg.Rules.VerificationThreshold); err != nil {
		return nil, err
	}
	return pack, nil
}

func buildDecisionStore(ctx context.Context, cfg config.Config, log *slog.Logger) (classifier.DecisionStore, func(), error) {
	if cfg.Postgres.DSN == "" {
		log.Warn("no postgres configured, decisions are kept in memory")
		return store.NewInMemoryStore(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("postgres decision store ready")
	return pg, func() { db.Close() }, nil
}

func buildAuditSink(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("no kafka brokers configured, audit events are kept in memory")
		return audit.NewInMemorySink(), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	log.Info("kafka audit sink ready", "topic", cfg.Kafka.Topic)
	return sink, sink.Close, nil
}
