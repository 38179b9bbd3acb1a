package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-registry/internal/auth"
	"asset-registry/internal/cache"
	"asset-registry/internal/config"
	"asset-registry/internal/database"
	"asset-registry/internal/handlers"
	"asset-registry/internal/logger"
	"asset-registry/internal/server"
	"asset-registry/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "asset-registry"

func main() {
	root := &cli.Command{
		Name:  serviceName,
		Usage: "IT asset registry API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "optional config file (yaml, json, toml); the environment wins over it"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Apply migrations and run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply migrations and exit",
				Action: migrate,
			},
		},
		Action: serve,
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// bootstrap loads config, builds the logger and opens a migrated database.
func bootstrap(ctx context.Context, cmd *cli.Command) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.LogLevel == "debug", lg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(ctx, db, cfg.DBDriver, lg); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	return cfg, lg, db, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	_, lg, db, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer logger.Sync(lg)
	defer database.Close(db)

	lg.Info("migrations applied")
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, lg, db, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer logger.Sync(lg)
	defer database.Close(db)

	kv, err := cache.New(ctx, cache.Options{
		Driver:        cfg.CacheDriver,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	if closer, ok := kv.(io.Closer); ok {
		defer closer.Close()
	}

	users, err := auth.NewMockDirectory()
	if err != nil {
		return err
	}
	lg.Warn("mock authentication enabled: demo accounts with fixed passwords, do not expose this server")

	var reg *prometheus.Registry
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(handlers.Deps{
		Store:         store.New(db),
		Cache:         kv,
		CacheTTL:      cfg.CacheTTL,
		Users:         users,
		Log:           lg,
		UploadDir:     cfg.UploadDir,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	r := server.NewRouter(cfg, server.Deps{Handler: h, Users: users, Log: lg, Registry: reg})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("db_driver", cfg.DBDriver),
			zap.String("cache_driver", cfg.CacheDriver),
		)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
