package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// BoardctlConfig configures the terminal board client.
type BoardctlConfig struct {
	Server    string `toml:"server"`
	UserID    string `toml:"user_id"`
	UserEmail string `toml:"user_email"`
	Timeout   int    `toml:"timeout_seconds"`
}

const (
	defaultBoardctlServer  = "http://localhost:8080"
	defaultBoardctlTimeout = 15
)

// LoadBoardctlFrom reads the TOML file at path. A missing file is not an
// error. Environment variables take precedence over file values:
//   - BOARDCTL_SERVER     overrides server
//   - BOARDCTL_USER_ID    overrides user_id
//   - BOARDCTL_USER_EMAIL overrides user_email
func LoadBoardctlFrom(path string) (BoardctlConfig, error) {
	var cfg BoardctlConfig
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return BoardctlConfig{}, err
		}
	}
	if v := os.Getenv("BOARDCTL_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("BOARDCTL_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("BOARDCTL_USER_EMAIL"); v != "" {
		cfg.UserEmail = v
	}
	if cfg.Server == "" {
		cfg.Server = defaultBoardctlServer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultBoardctlTimeout
	}
	return cfg, nil
}

// DefaultBoardctlPath returns ~/.config/talent-pipeline/boardctl.toml.
func DefaultBoardctlPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "talent-pipeline", "boardctl.toml")
}
