// Package config provides environment bootstrap and hierarchical
// configuration for the conciliador engine.
package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger is the shared logrus instance configured by ConfigureLogging.
	Logger = logrus.New()
)

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory. Missing files are fine; real environment wins.
func LoadEnv() {
	once.Do(func() {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			Logger.Debug("No .env file found, using environment variables")
			return
		}
		if err := godotenv.Load(".env"); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Info("Loaded environment variables from .env")
	})
}

// ConfigureLogging applies level and format to the shared logger.
func ConfigureLogging(level, format string) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if strings.ToLower(format) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}
