package main

import (
	"fmt"

	"github.com/deppfellow/fellows-tracker/internal/config"
	"github.com/deppfellow/fellows-tracker/internal/logger"
	"github.com/rs/zerolog"
)

// app is what every command needs before doing its own work.
type app struct {
	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger
}

func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return &app{cfg: cfg, loggerService: loggerService, log: log}, nil
}
