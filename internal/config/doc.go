// Package config provides configuration management for bootkit.
//
// Configuration is loaded from a single directory containing config.yaml.
// The default directory is ~/.config/bootkit; commands accept --config-path
// to use another one. A missing config.yaml is not an error: the defaults
// from GetDefaultConfig apply.
//
// # File Format
//
//	logLevel: debug
//	logFormat: json
//	catalogPath: modules.yaml
//	defaultConfiguration: true
//	headless: false
//	watchCatalog: true
//	shell:
//	  title: Orders Desk
//	metrics:
//	  enabled: true
//	  addr: localhost:9464
//
// catalogPath is resolved against the configuration directory when it is
// relative. The catalog file itself is read by the modularity package.
package config
