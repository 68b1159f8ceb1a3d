// Package config loads xcdecode's runtime configuration: worker pool size
// and log level, overridable by an optional YAML file and by a .env file in
// the current directory, in that precedence order (flags, loaded last by
// the caller, always win over both).
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the defaults cmd/xcdecode falls back to when a flag is left
// unset.
type Config struct {
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

// Default returns hardware-parallelism workers and info-level logging.
func Default() Config {
	return Config{
		Workers:  runtime.GOMAXPROCS(0),
		LogLevel: "info",
	}
}

// Load builds a Config starting from Default, then applies a YAML file at
// path (if path is non-empty and the file exists) and then the process
// environment (XCDECODE_WORKERS, XCDECODE_LOG_LEVEL), loading a .env file
// from the working directory first so those variables can be set without
// exporting them into the shell.
//
// github.com/joho/godotenv is grounded in ClusterCockpit-cc-backend, which
// loads its own .env the same way before reading its environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Optional file; fall through to environment overrides.
		default:
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	// Ignore a missing .env; it is an optional convenience, not a
	// requirement.
	_ = godotenv.Load()

	if v := os.Getenv("XCDECODE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: XCDECODE_WORKERS=%q: %w", v, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("XCDECODE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
