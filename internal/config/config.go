package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings the chantier binary reads at startup.
type Config struct {
	DBPath      string
	CatalogPath string // empty means the built-in catalog
	LogUseCases bool
	LogLevel    slog.Level
}

// DefaultConfig returns a Config with the database under ~/.chantier.
// Use-case logging is off by default.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:   filepath.Join(home, ".chantier", "chantier.db"),
		LogLevel: slog.LevelInfo,
	}, nil
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values. envFiles are loaded first; variables
// already set in the environment win over the files. With no envFiles a
// .env in the working directory is used when present.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("CHANTIER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHANTIER_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("CHANTIER_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CHANTIER_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(v))); err == nil {
			cfg.LogLevel = lvl
		}
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}
