package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"trainingLog/internal/config"
)

// ServiceName is the health service name the training log reports under.
const ServiceName = "trainingLog.TrainingLog"

// StartGRPC starts the gRPC health server on cfg.GRPC.Address and returns the
// bound address and a shutdown function. An empty address disables the server.
func StartGRPC(cfg *config.Config, hs *health.Server, log logrus.FieldLogger) (net.Addr, func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.GRPC.Address == "" {
		return nil, func(context.Context) error { return nil }, nil
	}

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return nil, nil, err
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(NewUnaryLoggingInterceptor(log)))
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Error("grpc server stopped")
		}
	}()

	return lis.Addr(), func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

// NewUnaryLoggingInterceptor logs every unary call at debug level and failures at warn level.
func NewUnaryLoggingInterceptor(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := log.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("grpc call failed")
		} else {
			entry.Debug("grpc call")
		}
		return resp, err
	}
}
