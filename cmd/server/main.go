package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpadapter "resume-studio/internal/adapter/http"
	repo "resume-studio/internal/adapter/repository"
	"resume-studio/internal/config"
	"resume-studio/internal/infrastructure/migration"
	"resume-studio/internal/storage"
	"resume-studio/internal/usecase"
	infra "resume-studio/pkg/infrastructure"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	sink, err := newSink(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up export sink", zap.Error(err))
	}

	opts := usecase.DefaultExportOptions()
	opts.MarginMM = cfg.Export.MarginMM
	opts.Landscape = cfg.Export.Landscape
	exporter := usecase.NewExporter(
		infra.NewChromedpRenderer(cfg.Export.ChromePath, logger),
		logger,
		usecase.WithSink(sink),
		usecase.WithAttempts(cfg.Export.Attempts),
		usecase.WithExportOptions(opts),
	)

	sessions := usecase.NewSessions(store, logger,
		usecase.WithSessionCapacity(cfg.Server.SessionCacheSize),
		usecase.WithSessionIdleTTL(cfg.Server.SessionIdleTTL),
	)
	h := httpadapter.NewHandler(sessions, exporter, httpadapter.CookieConfig{
		Name:   cfg.Server.SessionCookie,
		Secure: cfg.Server.SecureCookie,
	}, logger)
	app := httpadapter.NewApp(h)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server listening", zap.String("addr", addr), zap.String("storage", cfg.Storage.Driver))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("Shutdown incomplete", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			return nil, noop, err
		}
		s, err := repo.NewSQLiteStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		pool, err := infra.NewStoragePool(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := migration.RunMigrations(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repo.NewPostgresStore(pool), pool.Close, nil
	case config.DriverRedis:
		s, err := repo.NewRedisStore(repo.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		logger.Warn("Using in-memory storage; saved resumes are lost on restart")
		return storage.NewMemory(), noop, nil
	}
}

func newSink(ctx context.Context, cfg *config.Config) (usecase.ArtifactSink, error) {
	if cfg.S3.Bucket == "" {
		return infra.NewDirSink(cfg.Export.Dir), nil
	}
	return infra.NewS3Sink(ctx, infra.S3Config{
		Bucket:    cfg.S3.Bucket,
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Prefix:    cfg.S3.Prefix,
	})
}
