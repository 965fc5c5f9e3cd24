package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"secureid/config"
	"secureid/internal/app"
	"secureid/internal/cli"
	"secureid/internal/lib/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storageApp, err := app.NewStorageApp(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		log.Error("failed to open storage", sl.Err(err))
		return 1
	}
	defer func() {
		if err := storageApp.Stop(); err != nil {
			log.Error("closing storage app", sl.Err(err))
		}
	}()

	application, err := app.New(ctx, log, storageApp, cfg)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		return 1
	}

	c := cli.New(application.Auth, application.Session, os.Stdin, int(os.Stdin.Fd()), os.Stdout)

	if err := c.Run(ctx, flag.Args()); err != nil {
		log.Debug("command failed", sl.Err(err))
		fmt.Fprintln(os.Stderr, "error:", cli.Message(err))
		return 1
	}

	return 0
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: sl.MaskSecrets}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: sl.MaskSecrets}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: sl.MaskSecrets}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: sl.MaskSecrets}),
		)
	}

	return log
}
