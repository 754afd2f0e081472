package bootstrap

import (
	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/locator"
	"bootkit/internal/modularity"
	"bootkit/internal/region"
)

// EventAggregatorImplementation is the default registration for
// container.KeyEventAggregator.
var EventAggregatorImplementation = container.Impl("EventAggregator", func(container.Resolver) (any, error) {
	return events.NewAggregator(), nil
})

type defaultRegistration struct {
	key       container.Key
	impl      *container.Implementation
	singleton bool
}

// defaultRegistrations is applied with RegisterTypeIfMissing, so installers
// can replace any of them.
func defaultRegistrations() []defaultRegistration {
	return []defaultRegistration{
		{container.KeyServiceLocator, locator.Implementation, true},
		{container.KeyModuleInitializer, modularity.InitializerImplementation, true},
		{container.KeyModuleManager, modularity.ManagerImplementation, true},
		{container.KeyRegionAdapterMappings, region.AdapterMappingsImplementation, true},
		{container.KeyRegionManager, region.ManagerImplementation, true},
		{container.KeyEventAggregator, EventAggregatorImplementation, true},
		{container.KeyRegionViewRegistry, region.ViewRegistryImplementation, true},
		{container.KeyRegionBehaviorFactory, region.BehaviorFactoryImplementation, true},
		{container.KeyNavigationJournalEntry, region.JournalEntryImplementation, false},
		{container.KeyNavigationJournal, region.JournalImplementation, false},
		{container.KeyNavigationService, region.NavigationServiceImplementation, false},
		{container.KeyNavigationContentLoader, region.ContentLoaderImplementation, true},
		{container.KeyDelayedRegionCreationBehavior, region.DelayedRegionCreationImplementation, false},
	}
}

// DefaultKeys returns the keys ConfigureContainer registers when they are
// missing, in registration order.
func DefaultKeys() []container.Key {
	regs := defaultRegistrations()
	keys := make([]container.Key, 0, len(regs))
	for _, r := range regs {
		keys = append(keys, r.key)
	}
	return keys
}
