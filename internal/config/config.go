// Package config reads and writes grandlivre.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvDBPath overrides the configured database path when set (loaded from
// the environment or a .env file by the CLI).
const EnvDBPath = "GRANDLIVRE_DB"

// Config represents the top-level grandlivre.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// LedgerConfig locates the ledger database and fixes its currency.
type LedgerConfig struct {
	DBPath   string `yaml:"db_path"`
	Currency string `yaml:"currency"`
}

// Load reads a grandlivre.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project rooted
// at dir.
func Default(businessName, dir string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Ledger: LedgerConfig{
			DBPath:   filepath.Join(dir, "ledger.db"),
			Currency: "EUR",
		},
	}
}

// ResolveDBPath applies the environment override to the configured path.
func (c *Config) ResolveDBPath() string {
	if p := os.Getenv(EnvDBPath); p != "" {
		return p
	}
	return c.Ledger.DBPath
}
