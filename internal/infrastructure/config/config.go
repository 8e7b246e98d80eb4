package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HistoryPath string // JSON document path (json backend)
	Backend     string // "json" or "sqlite"
	SQLitePath  string // database path (sqlite backend)

	// Selection behavior when a category filter is exhausted mid-session:
	// "end" finishes the session, "reset" allows another pass.
	ExhaustPolicy string

	PackDir string // optional directory of YAML question packs
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg := &Config{
		HistoryPath:   getenvDefault("TRAINER_HISTORY_FILE", "trainer-history.json"),
		Backend:       getenvDefault("TRAINER_STORE", "json"),
		SQLitePath:    getenvDefault("TRAINER_DB_FILE", "trainer-history.db"),
		ExhaustPolicy: getenvDefault("TRAINER_EXHAUST_POLICY", "end"),
		PackDir:       os.Getenv("TRAINER_PACK_DIR"),
	}

	if cfg.Backend != "json" && cfg.Backend != "sqlite" {
		log.Fatalf("config: TRAINER_STORE=%q is not valid (want json or sqlite)", cfg.Backend)
	}
	if cfg.ExhaustPolicy != "end" && cfg.ExhaustPolicy != "reset" {
		log.Fatalf("config: TRAINER_EXHAUST_POLICY=%q is not valid (want end or reset)", cfg.ExhaustPolicy)
	}
	return cfg
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
