// Package customers is a sample module. It contributes the customer list
// to the main region and a navigation entry.
package customers

import (
	"fmt"

	"bootkit/internal/modularity"
	"bootkit/internal/region"
	"bootkit/internal/shell"
	"bootkit/pkg/logging"
)

// TypeName is the catalog type of this module.
const TypeName = "customers"

// View names.
const (
	ListView       = "CustomerList"
	NavigationView = "CustomersNav"
)

// Module registers the customer views.
type Module struct {
	Regions *region.Manager `inject:"RegionManager"`
	Logger  logging.Facade  `inject:"Logger"`
}

// New is the module constructor.
func New() modularity.Module {
	return &Module{}
}

// Initialize implements modularity.Module.
func (m *Module) Initialize() error {
	views := []struct {
		region string
		name   string
		title  string
	}{
		{shell.MainRegion, ListView, "Customers"},
		{shell.NavigationRegion, NavigationView, "Customers"},
	}
	for _, v := range views {
		name, title := v.name, v.title
		err := m.Regions.RegisterViewWithRegion(v.region, name, func() (any, error) {
			return shell.NewView(name, title), nil
		})
		if err != nil {
			return fmt.Errorf("register view %s: %w", name, err)
		}
	}

	m.Logger.Log("Customers module registered its views.", logging.CategoryInfo, logging.PriorityLow)
	return nil
}
