package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"trainingLog/internal/access"
	"trainingLog/internal/auth"
	"trainingLog/internal/config"
	"trainingLog/internal/db"
	grpcserver "trainingLog/internal/grpc"
	"trainingLog/internal/jobs"
	"trainingLog/internal/logging"
	"trainingLog/internal/middleware"
	"trainingLog/internal/web"
	"trainingLog/repository"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the last applied migration and exit")
	flag.Parse()

	// Load configuration
	load := config.LoadWithDefaults
	if os.Getenv("APP_ENV") == "production" {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	log.Infof("Configuration loaded: %v", cfg)

	if err := run(cfg, log, *rollback); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

func run(cfg *config.Config, log *logrus.Logger, rollback bool) error {
	// Open DB
	d, err := db.OpenWithOptions(cfg.Database.Driver, cfg.Database.DSN, db.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime(),
	})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.WithError(err).Warn("close db")
		}
	}()

	if rollback {
		if err := db.RollbackLast(d); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
		log.Info("last migration rolled back")
		return nil
	}

	metrics := middleware.NewMetrics("training_log")
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, log, metrics)

	srv, err := web.New(web.Options{
		Access:    access.New(repository.New(d), log),
		Sessions:  auth.NewSessions(cfg.Auth),
		Log:       log,
		Metrics:   metrics,
		Limiter:   limiter,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("build web server: %w", err)
	}

	// Start HTTP
	httpAddr, stopHTTP, err := web.StartHTTP(cfg, srv.Routes(), log)
	if err != nil {
		return fmt.Errorf("start http: %w", err)
	}
	log.Infof("HTTP server listening on %s", httpAddr)

	// Start gRPC health
	checker := grpcserver.NewChecker(d, log, metrics.SetDBUp)
	_ = checker.Probe(context.Background())
	grpcAddr, stopGRPC, err := grpcserver.StartGRPC(cfg, checker.Health, log)
	if err != nil {
		_ = stopHTTP(context.Background())
		return fmt.Errorf("start grpc: %w", err)
	}
	if grpcAddr != nil {
		log.Infof("gRPC health server listening on %s", grpcAddr)
	}

	stopServers := func(ctx context.Context) {
		if err := stopHTTP(ctx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
		if err := stopGRPC(ctx); err != nil {
			log.WithError(err).Warn("grpc shutdown")
		}
	}

	scheduler := jobs.New(log)
	if err := scheduleJobs(scheduler, checker, limiter, jobs.ProbeSchedule, jobs.CleanupSchedule); err != nil {
		stopServers(context.Background())
		return err
	}
	scheduler.Start()

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := scheduler.Stop(ctx); err != nil {
		log.WithError(err).Warn("stop jobs")
	}
	stopServers(ctx)
	return nil
}

// scheduleJobs registers the database probe and the limiter cleanup.
func scheduleJobs(s *jobs.Scheduler, p jobs.Prober, c jobs.Cleaner, probeSpec, cleanupSpec string) error {
	if err := s.AddProbe(probeSpec, p); err != nil {
		return fmt.Errorf("schedule probe: %w", err)
	}
	if err := s.AddCleanup(cleanupSpec, c, jobs.LimiterIdle); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	return nil
}
