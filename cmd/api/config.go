package main

import (
	"log/slog"
	"time"

	"github.com/avolkovs/rafflehub/internal/services/raffle"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`
	PGDSN           string        `env:"PG_DSN"`
	Raffle          raffle.Config
}
