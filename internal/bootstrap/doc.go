// Package bootstrap runs the startup sequence of a bootkit application.
//
// A Bootstrapper executes thirteen phases in a fixed order: it creates the
// logger, the module catalog and the container, configures the container
// with the default services and the caller's installers, installs the
// service locator provider, registers the framework fault kinds, creates
// the shell, binds the region manager to it, shows it and finally
// initializes the cataloged modules. Each phase can be replaced through
// Hooks; Installers add registrations without replacing the defaults.
//
//	b := bootstrap.New(bootstrap.Options{}, bootstrap.InstallerFunc(func(r bootstrap.Registrar) error {
//		return r.RegisterTypeIfMissing(container.KeyShell, shellImpl, false)
//	}))
//	proc, err := b.Run(true)
//
// Failures abort the sequence. Conditions that leave the application
// without a logger, module catalog, container or main window are reported
// as *FatalError; everything else is returned as produced by the failing
// phase. Every run produces a Report with the outcome of each phase.
package bootstrap
