// Package locator provides the service locator: resolving services by key
// from code that does not hold the container.
//
// There is no package-level global. The bootstrap sequence installs a
// provider on a *Handle owned by the process, and the handle travels through
// the call graph in a context.Context:
//
//	h := locator.NewHandle()
//	ctx := locator.WithHandle(context.Background(), h)
//	// ... bootstrap installs the provider on h ...
//	manager, err := locator.Get[*region.Manager](h, container.KeyRegionManager)
//
// Running bootstrap again replaces the provider. Doing so concurrently with
// callers of Current is safe but the callers may observe either provider.
package locator
