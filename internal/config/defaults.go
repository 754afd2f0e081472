package config

const (
	// DefaultCatalogFile is the catalog file name looked up in the
	// configuration directory.
	DefaultCatalogFile = "modules.yaml"

	// DefaultMetricsAddr is the default listen address of the metrics
	// endpoint.
	DefaultMetricsAddr = "localhost:9464"

	// DefaultShellTitle is the default main window title.
	DefaultShellTitle = "bootkit"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		LogLevel:             "info",
		LogFormat:            "text",
		CatalogPath:          DefaultCatalogFile,
		DefaultConfiguration: true,
		Shell: ShellConfig{
			Title: DefaultShellTitle,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}
