// Package config handles reading and writing .shopverse/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .shopverse/config.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	API      APIConfig      `yaml:"api"`
	Checkout CheckoutConfig `yaml:"checkout"`
	StateDB  string         `yaml:"state_db"`
}

// APIConfig holds the storefront API endpoint settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

// CheckoutConfig controls checkout behaviour.
type CheckoutConfig struct {
	GatewayKey string `yaml:"gateway_key"`
	NavDelay   int    `yaml:"nav_delay"` // seconds before jumping to order history
}

// configFileName is the path relative to the workspace root.
const configDir = ".shopverse"
const configFile = "config.yaml"

// ReadConfig reads .shopverse/config.yaml from the given directory.
// dir is the workspace root (not .shopverse/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

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

// WriteConfig writes cfg to .shopverse/config.yaml in the given directory.
// Creates the .shopverse/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 15,
		},
		Checkout: CheckoutConfig{
			GatewayKey: "rzp_test_IVOKUPstFIL8G6",
			NavDelay:   2,
		},
		StateDB: "state.db",
	}
}

// StateDBPath resolves the SQLite state database path under the
// .shopverse directory, creating the directory if needed.
func StateDBPath(dir string, cfg *Config) (string, error) {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("creating state directory: %w", err)
	}
	name := cfg.StateDB
	if name == "" {
		name = DefaultConfig().StateDB
	}
	return filepath.Join(dirPath, name), nil
}
