package grpcserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"trainingLog/internal/config"
	"trainingLog/internal/logging"
	"trainingLog/internal/testutil"
)

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("db down") }

func TestHealthServer_ReflectsDatabaseProbe(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "grpchealth")
	var lastUp *bool
	checker := NewChecker(d, logging.Discard(), func(up bool) { lastUp = &up })

	cfg := config.Defaults()
	cfg.GRPC.Address = "127.0.0.1:0"
	addr, shutdown, err := StartGRPC(&cfg, checker.Health, logging.Discard())
	if err != nil {
		t.Fatalf("start grpc: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})

	conn, err := grpc.NewClient(addr.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	check := func() healthpb.HealthCheckResponse_ServingStatus {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			t.Fatalf("health check: %v", err)
		}
		return resp.GetStatus()
	}

	if st := check(); st != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING before the first probe, got %v", st)
	}
	if err := checker.Probe(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if st := check(); st != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING after a successful probe, got %v", st)
	}
	if lastUp == nil || !*lastUp {
		t.Fatalf("probe result callback not invoked")
	}

	checker.DB = failingPinger{}
	if err := checker.Probe(context.Background()); err == nil {
		t.Fatalf("expected probe error")
	}
	if st := check(); st != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING after a failed probe, got %v", st)
	}
	if *lastUp {
		t.Fatalf("callback should report the failure")
	}
}

func TestStartGRPC_EmptyAddressDisables(t *testing.T) {
	cfg := config.Defaults()
	cfg.GRPC.Address = ""
	addr, shutdown, err := StartGRPC(&cfg, NewChecker(failingPinger{}, logging.Discard(), nil).Health, logging.Discard())
	if err != nil || addr != nil {
		t.Fatalf("expected disabled server, got addr=%v err=%v", addr, err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
