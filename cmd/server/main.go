// Command studyhub-server starts the StudyHub REST API and its gRPC health probe.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/and161185/studyhub/internal/config"
	"github.com/and161185/studyhub/internal/limiter"
	"github.com/and161185/studyhub/internal/migrate"
	"github.com/and161185/studyhub/internal/oracle"
	"github.com/and161185/studyhub/internal/repository/postgres"
	grpcserver "github.com/and161185/studyhub/internal/server/grpc"
	httpserver "github.com/and161185/studyhub/internal/server/http"
	"github.com/and161185/studyhub/internal/service"
	"github.com/and161185/studyhub/internal/staging"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves REST and health until signalled.
func main() {
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flag.Parse()

	cfg, err := config.NewConfig(*envFile)
	if err != nil {
		// logger is not configured yet
		panic(err)
	}

	logger, _ := zap.NewProduction()
	if cfg.LogDev {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("http", cfg.HTTP.Addr),
		zap.String("grpc", cfg.GRPC.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}
	if v, err := migrate.Version(ctx, cfg.Database.DSN); err == nil {
		logger.Info("schema", zap.Int64("version", v))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	accounts := postgres.NewAccountRepo(db)
	decks := postgres.NewDeckRepo(db)
	cards := postgres.NewCardRepo(db)
	transcripts := postgres.NewTranscriptRepo(db)

	var lim limiter.Limiter = limiter.Noop{}
	if cfg.Limiter.Enabled {
		lim = limiter.NewPG(db.Pool, cfg.Limiter.Window, cfg.Limiter.MaxFails, cfg.Limiter.BlockFor)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal("staging store", zap.Error(err))
	}

	orc := oracle.NewOpenAI(oracle.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	})

	// Services
	svc := httpserver.Services{
		Auth:        service.NewAuthService(accounts, []byte(cfg.JWT.Secret), cfg.JWT.TTL, lim),
		Decks:       service.NewDeckService(decks, cards),
		Cards:       service.NewCardService(cards),
		Transcripts: service.NewTranscriptService(transcripts),
		Generation:  service.NewGenerationService(orc, store),
	}

	app := httpserver.New(logger, svc, httpserver.Config{
		BodyLimit:   cfg.HTTP.BodyLimit,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	// Health
	hc := grpcserver.NewHealth(db, cfg.GRPC.HealthInterval, logger)
	gs := grpcserver.NewServer(logger, hc, cfg.GRPC.Reflection)
	go hc.Run(ctx)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("health listening", zap.String("addr", cfg.GRPC.Addr))
		errCh <- gs.Serve(lis)
	}()
	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- app.Listen(cfg.HTTP.Addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}

		done := make(chan struct{})
		go func() {
			gs.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			gs.Stop()
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func newStore(ctx context.Context, cfg *config.Config) (staging.Store, error) {
	switch cfg.Staging.Backend {
	case "minio":
		return staging.NewMinIO(ctx, staging.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
	case "disk":
		dir := cfg.Staging.Dir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "studyhub-uploads")
		}
		return staging.NewDisk(dir)
	}
	return nil, errors.New("unknown staging backend " + cfg.Staging.Backend)
}
