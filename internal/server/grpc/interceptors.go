package grpcserver

import (
	"context"
	"path"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// checkLogger records health checks. Routine answers go to debug; anything
// other than OK or an unknown service name is a warning.
func checkLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("rpc", path.Base(info.FullMethod)),
			zap.Stringer("status", code),
			zap.Duration("took", time.Since(start)),
		}
		if r, ok := req.(*healthpb.HealthCheckRequest); ok {
			fields = append(fields, zap.String("service", r.GetService()))
		}
		if r, ok := resp.(*healthpb.HealthCheckResponse); ok {
			fields = append(fields, zap.Stringer("serving", r.GetStatus()))
		}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.Stringer("from", p.Addr))
		}

		switch code {
		case codes.OK, codes.NotFound:
			log.Debug("health rpc", fields...)
		default:
			log.Warn("health rpc failed", fields...)
		}
		return resp, err
	}
}

// panicGuard keeps the health endpoint answering after a handler panic.
func panicGuard(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("health rpc panicked",
					zap.String("rpc", path.Base(info.FullMethod)),
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Errorf(codes.Internal, "%s failed", path.Base(info.FullMethod))
			}
		}()
		return next(ctx, req)
	}
}
