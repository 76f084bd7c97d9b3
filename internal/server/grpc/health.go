// Package grpcserver serves the grpc.health.v1 probe for the REST backend.
package grpcserver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Service is the health service name reported alongside the overall "" entry.
const Service = "studyhub"

// Pinger is satisfied by the database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health tracks database reachability in a grpc health server.
type Health struct {
	hs       *health.Server
	db       Pinger
	interval time.Duration
	log      *zap.Logger
}

// NewHealth starts in NOT_SERVING until the first successful probe.
func NewHealth(db Pinger, interval time.Duration, log *zap.Logger) *Health {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Health{hs: hs, db: db, interval: interval, log: log}
}

// Probe pings the database once and updates the serving status.
func (h *Health) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.hs.SetServingStatus("", st)
	h.hs.SetServingStatus(Service, st)
	return st
}

// Run probes every interval until ctx is done, then marks everything NOT_SERVING.
func (h *Health) Run(ctx context.Context) {
	h.Probe(ctx)
	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			h.hs.Shutdown()
			return
		case <-t.C:
			h.Probe(ctx)
		}
	}
}

// NewServer builds the gRPC server that answers health checks for h.
func NewServer(log *zap.Logger, h *Health, withReflection bool) *grpc.Server {
	log = log.Named("health")
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(panicGuard(log), checkLogger(log)))
	healthpb.RegisterHealthServer(s, h.hs)
	if withReflection {
		reflection.Register(s)
	}
	return s
}
