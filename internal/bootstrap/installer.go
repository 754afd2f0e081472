package bootstrap

import (
	"bootkit/internal/container"
)

// Registrar is what an Installer sees while the container is configured.
type Registrar interface {
	Container() *container.Container
	RegisterTypeIfMissing(key container.Key, impl *container.Implementation, asSingleton bool) error
}

// Installer adds registrations to the container during ConfigureContainer.
// Installers run in the order they were given to New.
type Installer interface {
	Install(r Registrar) error
}

// InstallerFunc adapts a function to Installer.
type InstallerFunc func(r Registrar) error

// Install implements Installer.
func (f InstallerFunc) Install(r Registrar) error {
	return f(r)
}
