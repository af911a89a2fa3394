package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/icpcsp/compreg/internal/api"
	"github.com/icpcsp/compreg/internal/cache"
	"github.com/icpcsp/compreg/internal/config"
	"github.com/icpcsp/compreg/internal/db"
	"github.com/icpcsp/compreg/internal/logger"
	"github.com/icpcsp/compreg/internal/notify"
	"github.com/icpcsp/compreg/internal/repository/dao"
	"github.com/icpcsp/compreg/internal/service"
)

const DefaultConfigPath = "./cmd/app/config.yml"

// Bootstrap loads the config, sets up logging and opens the database.
func Bootstrap(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if conf.Log.Level != "" {
		if err = logger.SetLevel(conf.Log.Level); err != nil {
			return nil, nil, fmt.Errorf("failed to set log level -> %w", err)
		}
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}

func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, DefaultConfigPath)
}

// Run serves the API until ctx is cancelled. The HTTP server, the notification hub
// and the config watcher share one errgroup; the first failure stops them all.
func Run(ctx context.Context, configPath string) error {
	conf, postgresDB, err := Bootstrap(configPath)
	if err != nil {
		return err
	}
	defer db.Close(postgresDB)
	defer func() { _ = zap.L().Sync() }()

	if conf.Postgres.AutoMigrate {
		if err = dao.InitTables(postgresDB); err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	var svcCache service.Cache
	store, err := cache.Open(ctx, conf.Redis)
	if err != nil {
		zap.L().Warn("redis unavailable, caching disabled", zap.Error(err))
	} else if store != nil {
		defer store.Close()
		svcCache = store
	}

	hub := notify.NewHub(conf.API.AllowedCORSDomains)
	s := api.NewServer(conf, postgresDB, hub, svcCache)
	srv := s.HTTPServer()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.API.ShutdownTimeout)
		defer cancel()
		zap.L().Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return config.Watch(gctx, configPath, func(next *config.AppConfig) {
			if err := logger.SetLevel(next.Log.Level); err != nil {
				zap.L().Warn("ignoring log level", zap.Error(err))
			}
		}, func(err error) {
			zap.L().Warn("config reload failed", zap.Error(err))
		})
	})

	return g.Wait()
}
