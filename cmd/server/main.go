package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/config"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/server"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config file")
	port := flag.String("port", "", "override server port")
	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)
	if *port != "" {
		cfg.Server.Port = *port
	}

	logger := logging.MustNew(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	defer logger.Sync() //nolint:errcheck

	srv, err := server.New(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting GenApp engine",
		zap.String("port", cfg.Server.Port),
		zap.String("host", cfg.Server.Host))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
