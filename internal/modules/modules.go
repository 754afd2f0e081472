// Package modules lists the modules compiled into bootkit.
package modules

import (
	"bootkit/internal/modularity"
	"bootkit/internal/modules/customers"
	"bootkit/internal/modules/orders"
)

// Register adds every compiled-in module type to types.
func Register(types *modularity.TypeRegistry) error {
	builtins := map[string]modularity.Constructor{
		customers.TypeName: customers.New,
		orders.TypeName:    orders.New,
	}
	for _, name := range []string{customers.TypeName, orders.TypeName} {
		if err := types.Register(name, builtins[name]); err != nil {
			return err
		}
	}
	return nil
}

// NewTypeRegistry returns a registry holding every compiled-in module type.
func NewTypeRegistry() (*modularity.TypeRegistry, error) {
	types := modularity.NewTypeRegistry()
	if err := Register(types); err != nil {
		return nil, err
	}
	return types, nil
}

// DefaultCatalog is used when no catalog file exists.
func DefaultCatalog() []modularity.ModuleInfo {
	return []modularity.ModuleInfo{
		{Name: "Customers", Type: customers.TypeName},
		{Name: "Orders", Type: orders.TypeName, DependsOn: []string{"Customers"}},
	}
}
