package container

// Well-known keys registered by the bootstrap sequence.
const (
	KeyLogger        Key = "Logger"
	KeyModuleCatalog Key = "ModuleCatalog"
	KeyContainer     Key = "Container"
	KeyShell         Key = "Shell"

	KeyServiceLocator                Key = "ServiceLocator"
	KeyModuleInitializer             Key = "ModuleInitializer"
	KeyModuleManager                 Key = "ModuleManager"
	KeyRegionAdapterMappings         Key = "RegionAdapterMappings"
	KeyRegionManager                 Key = "RegionManager"
	KeyEventAggregator               Key = "EventAggregator"
	KeyRegionViewRegistry            Key = "RegionViewRegistry"
	KeyRegionBehaviorFactory         Key = "RegionBehaviorFactory"
	KeyNavigationJournalEntry        Key = "RegionNavigationJournalEntry"
	KeyNavigationJournal             Key = "RegionNavigationJournal"
	KeyNavigationService             Key = "RegionNavigationService"
	KeyNavigationContentLoader       Key = "RegionNavigationContentLoader"
	KeyDelayedRegionCreationBehavior Key = "DelayedRegionCreationBehavior"

	// KeyModuleTypeRegistry holds the compiled-in module constructors. It is
	// registered by application installers, not by the defaults.
	KeyModuleTypeRegistry Key = "ModuleTypeRegistry"
)
