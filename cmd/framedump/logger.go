package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logLevelEnv = "STREAMCODEC_LOG_LEVEL"

func initLogger(app string, out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(logLevel(os.Getenv(logLevelEnv))).
		With().Timestamp().Str("app", app).Logger()
	log.Logger = logger

	return logger
}

func logLevel(name string) zerolog.Level {
	name = strings.TrimSpace(name)
	if name == "" {
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}
