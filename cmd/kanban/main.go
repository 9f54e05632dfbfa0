package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/valyala/fasthttp"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/kanban/api/handler"
	"github.com/fastygo/kanban/internal/config"
	"github.com/fastygo/kanban/internal/infrastructure/boltdb"
	"github.com/fastygo/kanban/internal/infrastructure/buffer"
	"github.com/fastygo/kanban/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/kanban/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/kanban/internal/infrastructure/redis"
	s3Infra "github.com/fastygo/kanban/internal/infrastructure/s3"
	sqliteInfra "github.com/fastygo/kanban/internal/infrastructure/sqlite"
	"github.com/fastygo/kanban/internal/middleware"
	"github.com/fastygo/kanban/internal/router"
	"github.com/fastygo/kanban/internal/services"
	"github.com/fastygo/kanban/internal/services/lifecycle"
	"github.com/fastygo/kanban/pkg/httpcontext"
	"github.com/fastygo/kanban/pkg/logger"
	"github.com/fastygo/kanban/repository"
	boltRepo "github.com/fastygo/kanban/repository/bolt"
	"github.com/fastygo/kanban/repository/memory"
	pgRepo "github.com/fastygo/kanban/repository/postgres"
	redisRepo "github.com/fastygo/kanban/repository/redis"
	s3Repo "github.com/fastygo/kanban/repository/s3"
	sqliteRepo "github.com/fastygo/kanban/repository/sqlite"
	"github.com/fastygo/kanban/usecase"
	boardUC "github.com/fastygo/kanban/usecase/board"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		App:      cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// the bolt file holds the board for the bolt driver and the outbox for remote drivers
	var db *bolt.DB
	if cfg.Storage.Driver == config.DriverBolt || cfg.UsesOutbox() {
		db, err = boltdb.Open(cfg.Bolt.Path)
		if err != nil {
			zapLogger.Fatal("failed to open bolt database", zap.String("path", cfg.Bolt.Path), zap.Error(err))
		}
		manager.Register("boltdb", func(ctx context.Context) error {
			return db.Close()
		})
	}

	repo, err := openRepository(appCtx, cfg, db, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage setup failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	var (
		bufferStore *buffer.Store
		bufferSize  monitor.BufferSizer
	)
	if cfg.UsesOutbox() {
		bufferStore, err = buffer.New(db, "outbox")
		if err != nil {
			zapLogger.Fatal("failed to open outbox", zap.Error(err))
		}
		bufferSize = bufferStore
	}

	mon := monitor.New(cfg.Storage.Driver, repo, bufferSize, cfg.Monitor.Interval, zapLogger)
	mon.Refresh()
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	var snapshotBuffer usecase.SnapshotBuffer
	if bufferStore != nil {
		processor := services.NewSnapshotProcessor(
			bufferStore,
			mon,
			repo,
			cfg.Storage.Namespace,
			zapLogger,
			services.ProcessorConfig{
				Interval:   cfg.Buffer.SyncInterval,
				BatchSize:  cfg.Buffer.BatchSize,
				MaxRetries: cfg.Buffer.MaxRetry,
				Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
			},
		)
		if err := processor.Drain(appCtx); err != nil {
			zapLogger.Warn("initial outbox drain failed", zap.Error(err))
		}
		processor.Start()
		manager.Register("snapshot_processor", func(ctx context.Context) error {
			processor.Stop(ctx)
			return nil
		})

		repo = services.PendingFirst(repo, processor)
		snapshotBuffer = services.NewSnapshotBridge(processor)
	}

	store := boardUC.Open(appCtx, repo, snapshotBuffer, zapLogger)

	dispatcher := usecase.NewDispatcher()
	boardUC.RegisterCommands(dispatcher, store)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Board:    apiHandler.NewBoardHandler(store, ctxAdapter, zapLogger),
		Commands: apiHandler.NewCommandHandler(dispatcher, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers, middleware.AccessLog(zapLogger))

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("driver", cfg.Storage.Driver))
		return server.ListenAndServe(cfg.Address())
	})
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	select {
	case <-appCtx.Done():
	case err := <-manager.Errors():
		zapLogger.Error("shutting down after component failure", zap.Error(err))
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// openRepository connects the configured storage driver and registers its shutdown hook.
func openRepository(ctx context.Context, cfg *config.Config, db *bolt.DB, manager *lifecycle.Manager, zapLogger *zap.Logger) (repository.BoardRepository, error) {
	ns := cfg.Storage.Namespace

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		zapLogger.Warn("memory driver selected, the board is lost on exit")
		return memory.NewBoardRepository(), nil

	case config.DriverBolt:
		return boltRepo.NewBoardRepository(db, ns)

	case config.DriverSQLite:
		sqlDB, err := sqliteInfra.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		manager.Register("sqlite", func(ctx context.Context) error {
			return sqlDB.Close()
		})
		if cfg.Migrations.Enabled {
			if err := sqliteInfra.RunMigrations(sqlDB, filepath.Join(cfg.Migrations.Path, "sqlite")); err != nil {
				return nil, fmt.Errorf("sqlite migrations: %w", err)
			}
		}
		return sqliteRepo.NewBoardRepository(sqlDB, ns), nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			// the outbox keeps the board usable; migrations run again on the next start
			zapLogger.Warn("postgres migrations failed", zap.Error(err))
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		return pgRepo.NewBoardRepository(pool, ns), nil

	case config.DriverRedis:
		client, err := redisInfra.NewClient(cfg.Redis, zapLogger)
		if err != nil {
			return nil, err
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		return redisRepo.NewBoardRepository(client, ns), nil

	case config.DriverS3:
		client, err := s3Infra.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := s3Infra.CheckBucket(ctx, client, cfg.S3.Bucket, zapLogger); err != nil {
			return nil, err
		}
		return s3Repo.NewBoardRepository(client, cfg.S3.Bucket, ns), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
