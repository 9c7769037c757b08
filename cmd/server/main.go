package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/tebakkabupaten/mapquiz/internal/config"
	"github.com/tebakkabupaten/mapquiz/internal/database"
	"github.com/tebakkabupaten/mapquiz/internal/geodata"
	"github.com/tebakkabupaten/mapquiz/internal/history"
	"github.com/tebakkabupaten/mapquiz/internal/migrations"
	"github.com/tebakkabupaten/mapquiz/internal/server"
	"github.com/tebakkabupaten/mapquiz/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	deps := server.Deps{SPADir: cfg.SPADir}

	// --- History storage: redis when configured, sqlite otherwise ---
	var kv storage.Store
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		kv = storage.NewRedisStore(rdb)
		deps.Redis = rdb
	} else {
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)

		kv = storage.NewSQLiteStore(db)
		deps.DB = db
	}

	deps.History, err = history.New(kv)
	if err != nil {
		return fmt.Errorf("initializing history store: %w", err)
	}

	// --- Region data: local files when configured, upstream HTTP otherwise ---
	if cfg.GeoDataDir != "" {
		logger.Info("serving region data from disk", "dir", cfg.GeoDataDir)
		deps.Provider = geodata.NewFileProvider(cfg.GeoDataDir)
	} else {
		logger.Info("fetching region data from upstream", "url", cfg.GeoDataURL)
		deps.Provider = geodata.NewHTTPProvider(cfg.GeoDataURL)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, deps)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
