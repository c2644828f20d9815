package main

import (
	"github.com/craftplan/craftplan/internal/config"
	"github.com/craftplan/craftplan/internal/handler"
	"github.com/craftplan/craftplan/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
