package app

import (
	"bootkit/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses all log output
	Silent bool

	// Headless forces headless mode regardless of config.yaml
	Headless bool

	// Custom configuration path (optional)
	// When empty, ~/.config/bootkit is used
	ConfigPath string

	// Settings loaded from config.yaml. NewApplication fills it when nil.
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}
