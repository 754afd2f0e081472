// Package orders is a sample module. It depends on customers and adds the
// order views, following navigation to show the selected customer's
// orders.
package orders

import (
	"fmt"
	"sync"

	"bootkit/internal/events"
	"bootkit/internal/modularity"
	"bootkit/internal/region"
	"bootkit/internal/shell"
	"bootkit/pkg/logging"
)

// TypeName is the catalog type of this module.
const TypeName = "orders"

// View names.
const (
	ListView    = "OrderList"
	SummaryView = "OrderSummary"
)

// Module registers the order views.
type Module struct {
	Regions *region.Manager    `inject:"RegionManager"`
	Events  *events.Aggregator `inject:"EventAggregator"`
	Logger  logging.Facade     `inject:"Logger"`

	mu       sync.Mutex
	customer string
}

// New is the module constructor.
func New() modularity.Module {
	return &Module{}
}

// Initialize implements modularity.Module.
func (m *Module) Initialize() error {
	if err := m.Regions.RegisterViewWithRegion(shell.MainRegion, ListView, func() (any, error) {
		return shell.NewView(ListView, "Orders"), nil
	}); err != nil {
		return fmt.Errorf("register view %s: %w", ListView, err)
	}
	if err := m.Regions.RegisterViewWithRegion(shell.TabsRegion, SummaryView, func() (any, error) {
		return shell.NewView(SummaryView, "Order summary"), nil
	}); err != nil {
		return fmt.Errorf("register view %s: %w", SummaryView, err)
	}

	m.Events.Subscribe(events.TopicNavigated, m.onNavigated)

	m.Logger.Log("Orders module registered its views.", logging.CategoryInfo, logging.PriorityLow)
	return nil
}

func (m *Module) onNavigated(e events.Event) {
	if e.Data.Region != shell.MainRegion || e.Data.Target != ListView {
		return
	}
	customer, _ := e.Data.Arguments["customer"].(string)

	m.mu.Lock()
	m.customer = customer
	m.mu.Unlock()
}

// Customer returns the customer the order list was last navigated for.
func (m *Module) Customer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.customer
}
