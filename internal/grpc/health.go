// Package grpcserver exposes the standard gRPC health service, reporting
// whether the training log can reach its database.
package grpcserver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker probes the database and publishes the result to the health server.
type Checker struct {
	Health *health.Server
	DB     Pinger
	Log    logrus.FieldLogger

	// OnResult is called after every probe, e.g. to update a metric. Optional.
	OnResult func(up bool)
}

// NewChecker returns a checker with a fresh health server reporting NOT_SERVING
// until the first probe succeeds.
func NewChecker(db Pinger, log logrus.FieldLogger, onResult func(bool)) *Checker {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{Health: hs, DB: db, Log: log, OnResult: onResult}
}

// Probe pings the database and updates the serving status.
func (c *Checker) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := c.DB.PingContext(ctx)
	st := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		c.Log.WithError(err).Warn("database probe failed")
	}
	c.Health.SetServingStatus("", st)
	c.Health.SetServingStatus(ServiceName, st)
	if c.OnResult != nil {
		c.OnResult(err == nil)
	}
	return err
}
