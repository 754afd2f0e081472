// Package app wires bootkit together: it loads the configuration, sets up
// logging, bootstraps the modular application and hosts it.
//
// # Lifecycle
//
//  1. NewApplication loads config.yaml (see package config), initializes
//     logging and registers the compiled-in module types.
//  2. Bootstrap runs the bootstrap sequence. The application installer adds
//     the module type registry, the event aggregator and, unless headless,
//     the main window with its MainRegion, NavigationRegion and TabsRegion.
//     The module catalog comes from the configured catalog file, or from
//     the built-in catalog when that file does not exist.
//  3. Serve hosts the process until the context is cancelled or SIGINT or
//     SIGTERM arrives. It optionally serves Prometheus metrics and reloads
//     the catalog file on change, and notifies systemd when ready and when
//     stopping.
//
// Events published by the framework are logged under the "Events"
// subsystem; module load outcomes are counted in the metrics.
package app
