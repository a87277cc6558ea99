// Package config loads the settings shared by every command from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/kirsle/configdir"
)

const appName = "blockdrop"

type Config struct {
	// NoGhost starts games with the ghost piece hidden.
	NoGhost bool `env:"BLOCKDROP_NO_GHOST"`

	// Seed makes the piece sequence reproducible. Zero picks a random seed.
	Seed uint64 `env:"BLOCKDROP_SEED"`

	// ScoreAddr is the address of a score server. When empty the high score
	// is kept in the local database.
	ScoreAddr string     `env:"BLOCKDROP_SCORE_ADDR"`
	DataDir   string     `env:"BLOCKDROP_DATA_DIR"`
	DBPath    string     `env:"BLOCKDROP_DB_PATH"`
	LogPath   string     `env:"BLOCKDROP_LOG"`
	LogLevel  slog.Level `env:"BLOCKDROP_LOG_LEVEL" envDefault:"info"`
	Port      int        `env:"BLOCKDROP_PORT" envDefault:"9000"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and fills the paths left empty from the
// user's config directory.
func Load() (*Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return nil, err
	}
	if c.Port < 1 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		c.DataDir = configdir.LocalConfig(appName)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "scores.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, appName+".log")
	}
	return &c, nil
}

// EnsureDataDir creates the data directory when missing.
func (c *Config) EnsureDataDir() error {
	if err := configdir.MakePath(c.DataDir); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// ListenAddr is the address the score server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
