// Package modularity holds the module catalog and the services that load
// modules from it.
//
// A Catalog lists ModuleInfo entries, either built in code or read from a
// YAML file with LoadCatalogFile. Module types are resolved through a
// TypeRegistry filled at startup from the modules compiled into the binary,
// so no runtime type discovery is involved.
//
// The Manager initializes WhenAvailable modules in dependency order on Run,
// loads OnDemand modules through LoadModule, and merges additions from a
// reloaded catalog with Refresh. A Watcher can drive Refresh from file
// changes.
//
// Each module is built by the Initializer, which fills `inject:"<key>"`
// struct fields from the container before calling Initialize:
//
//	type OrdersModule struct {
//		Regions *region.Manager `inject:"RegionManager"`
//	}
//
//	func (m *OrdersModule) Initialize() error {
//		return m.Regions.RegisterViewWithRegion("MainRegion", "OrdersView", newOrdersView)
//	}
package modularity
