// Package config holds application configuration sourced from the
// environment, with a best-effort .env overlay for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultAddr   = ":8080"
	defaultDBPath = "./batchcost.db"
)

// Config holds application configuration sourced from environment
// variables
type Config struct {
	Addr         string
	DBPath       string
	ScenarioPath string
	LogLevel     string
	LogJSON      bool
}

// Load reads environment variables and returns a populated Config.
// A missing .env file is not an error; production injects real env.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         os.Getenv("BATCHCOST_ADDR"),
		DBPath:       os.Getenv("BATCHCOST_DB"),
		ScenarioPath: os.Getenv("BATCHCOST_SCENARIO"),
		LogLevel:     os.Getenv("BATCHCOST_LOG_LEVEL"),
		LogJSON:      os.Getenv("BATCHCOST_LOG_JSON") == "true",
	}

	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}

	return cfg
}

// NewLogger builds a logger from the configured level and format.
// Unparseable levels fall back to info.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if c.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
