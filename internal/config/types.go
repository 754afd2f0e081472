package config

// Config is the top-level configuration structure for bootkit.
type Config struct {
	LogLevel  string `yaml:"logLevel,omitempty"`  // debug, info, warn, error (default: info)
	LogFormat string `yaml:"logFormat,omitempty"` // text or json (default: text)

	// CatalogPath is the module catalog file. Relative paths are resolved
	// against the configuration directory.
	CatalogPath string `yaml:"catalogPath,omitempty"`

	// DefaultConfiguration registers the default services during bootstrap.
	DefaultConfiguration bool `yaml:"defaultConfiguration"`

	Headless     bool `yaml:"headless,omitempty"`     // Run without a shell
	WatchCatalog bool `yaml:"watchCatalog,omitempty"` // Reload the catalog file on change

	Shell   ShellConfig   `yaml:"shell,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// ShellConfig configures the main window.
type ShellConfig struct {
	Title string `yaml:"title,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Addr    string `yaml:"addr,omitempty"` // Listen address (default: localhost:9464)
}
