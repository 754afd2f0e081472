// Package logging provides the structured logging system for bootkit.
//
// It has two faces over the same log/slog sink:
//
//   - Package-level helpers (Debug, Info, Warn, Error) that take a subsystem
//     name and a printf-style message. The host and CLI use these.
//   - The Facade interface, Log(message, category, priority), which is what
//     the bootstrapper and every container-resolved service receive. Facades
//     are values, so a test harness can swap in a Recorder and assert on the
//     exact sequence of messages a bootstrap run produced.
//
// # Initialization
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Init(logging.LevelDebug, logging.FormatJSON, os.Stderr)
//
// # Categories and levels
//
// Facade categories map onto levels as follows:
//
//	CategoryDebug     -> LevelDebug
//	CategoryInfo      -> LevelInfo
//	CategoryWarn      -> LevelWarn
//	CategoryException -> LevelError
//
// Priority does not influence filtering; it is carried as an attribute.
//
// # Subsystems
//
//   - Bootstrap: the bootstrap sequence
//   - Container: registration and resolution
//   - Modularity: module catalog and module manager
//   - Region: region manager and navigation
//   - App: the CLI host
package logging
