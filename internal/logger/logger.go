package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var globalLogger *logrus.Logger

// Initialize sets up the global logger. Level comes from LOG_LEVEL and
// defaults to info.
func Initialize() *logrus.Logger {
	if globalLogger != nil {
		return globalLogger
	}

	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	globalLogger = logger
	return globalLogger
}

// Get returns the global logger, initializing it on first use.
func Get() *logrus.Logger {
	if globalLogger == nil {
		return Initialize()
	}
	return globalLogger
}
