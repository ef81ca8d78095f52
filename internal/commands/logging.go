package commands

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"hnsearch/internal/config"
)

// setupLogging sends logs to the rotated log file; the terminal belongs to
// the UI. An empty file name discards logs.
func setupLogging(cfg config.Logging) (*logrus.Logger, func(), error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return log, func() {}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(file)
	return log, func() { _ = file.Close() }, nil
}
