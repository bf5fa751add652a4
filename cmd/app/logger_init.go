package main

import (
	"github.com/osse101/questledger/internal/config"
	"github.com/osse101/questledger/internal/logger"
)

// loggerConfig starts from the environment's logging defaults and applies whatever the app configuration sets explicitly
func loggerConfig(cfg *config.Config) logger.Config {
	return logger.ForEnvironment(cfg.Environment).Override(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
	})
}
