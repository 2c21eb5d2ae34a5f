package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zzzcalc/internal/config"
	"github.com/udisondev/zzzcalc/internal/db"
	"github.com/udisondev/zzzcalc/internal/logger"
	"github.com/udisondev/zzzcalc/internal/server"
)

const defaultConfigPath = "config/zzzcalcd.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", defaultConfigPath, "path to server config")
	flag.Parse()

	if p := os.Getenv("ZZZCALC_CONFIG"); p != "" {
		*cfgPath = p
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Setup(cfg.Log)
	slog.Info("zzzcalcd starting", "listen", cfg.ListenAddress, "dialect", cfg.Database.Dialect)

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	srv := server.New(cfg, db.NewBuildStore(database))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("zzzcalcd stopped")
	return nil
}
