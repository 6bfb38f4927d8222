// Package config holds all sceneforge configuration, loaded from the
// workspace .sceneforge/config.yaml with sane defaults when the file is
// absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-workspace config path relative to the root.
const ConfigFileName = ".sceneforge/config.yaml"

// Config holds all sceneforge configuration.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
	Search  SearchConfig  `yaml:"search"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Scene:   DefaultSceneConfig(),
		Logging: LoggingConfig{},
		Search:  DefaultSearchConfig(),
	}
}

// Load reads the workspace config, falling back to defaults when the file
// does not exist. A present-but-broken file is an error: silently ignoring
// it would make misconfiguration invisible.
func Load(workspace string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(workspace, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.Scene.fillDefaults()
	cfg.Search.fillDefaults()
	return cfg, nil
}

// applyEnvOverrides lets the environment flip debug logging without
// touching the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SCENEFORGE_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}
