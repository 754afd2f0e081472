// Package container implements the dependency container bootkit services are
// resolved from.
//
// A registration binds a Key to either a fixed instance or a named factory
// with a Lifetime. Factories receive a Resolver and pull their own
// dependencies through it, so a failure deep in a dependency chain comes back
// as nested ResolutionErrors; MissingKey reports the key at the bottom.
//
//	c := container.New(container.WithCapabilities(catalog))
//	_ = c.Register(container.KeyRegionManager, container.Impl("RegionManager", newManager), container.Singleton)
//	manager, err := container.ResolveAs[*region.Manager](c, container.KeyRegionManager)
//
// Capabilities replace runtime type discovery: a CapabilityCatalog lists, at
// startup, the implementations known for each capability and Scan returns
// them.
package container
