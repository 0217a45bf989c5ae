package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BATCHCOST_ADDR", "")
	t.Setenv("BATCHCOST_DB", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.DBPath != "./batchcost.db" {
		t.Errorf("Expected default db path ./batchcost.db, got %s", cfg.DBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BATCHCOST_ADDR", ":9090")
	t.Setenv("BATCHCOST_DB", "/tmp/test.db")
	t.Setenv("BATCHCOST_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Errorf("Expected addr :9090, got %s", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("Expected db path /tmp/test.db, got %s", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	log := Config{LogLevel: "chatty"}.NewLogger()
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info fallback for bad level, got %s", log.GetLevel())
	}

	log = Config{LogLevel: "warn"}.NewLogger()
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %s", log.GetLevel())
	}
}
