package config

import "sceneforge/internal/logging"

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"` // Master toggle - false = no logging
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Everything is off in production mode; in debug mode a category is on
// unless explicitly disabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, ok := c.Categories[category]
	if !ok {
		return true
	}
	return enabled
}

// Options converts to the logging package's mirror struct.
func (c LoggingConfig) Options() logging.Options {
	return logging.Options{DebugMode: c.DebugMode, Categories: c.Categories}
}
