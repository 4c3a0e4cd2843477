package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appdeck-hq/appdeck-client/internal/app"
	"github.com/appdeck-hq/appdeck-client/internal/config"
	"github.com/appdeck-hq/appdeck-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "appdeckctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli, err := app.New(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize cli", "error", err)
		return err
	}

	return cli.Run(ctx, os.Args[1:])
}
