// Package config carries the tool's environment-backed settings. These are
// defaults for CLI flags, not generation inputs; generation is configured
// explicitly per run.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	OutputDir     string
	LogLevel      string
	Seed          int64
	Format        string
	SpatialConfig string
}

func Load() *Config {
	return &Config{
		OutputDir:     getEnv("SBGEN_OUTPUT_DIR", "./data"),
		LogLevel:      getEnv("SBGEN_LOG_LEVEL", "info"),
		Seed:          getEnvInt64("SBGEN_SEED", 1),
		Format:        getEnv("SBGEN_FORMAT", "tbl"),
		SpatialConfig: getEnv("SBGEN_SPATIAL_CONFIG", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
