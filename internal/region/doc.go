// Package region implements named extension points ("regions") in the shell
// and the services that fill and navigate them.
//
// A Host (the shell) declares region Targets. SetRegionManager binds a
// Manager to the host and schedules a DelayedRegionCreationBehavior per
// target; the next RefreshAllRegions creates each region through the
// Adapter mapped for the target kind:
//
//	ContentControl -> SingleActive region, first view auto-activates
//	ItemsControl   -> AllActive region
//	Selector       -> MultipleActive region
//
// Every new region gets the behaviors known to the BehaviorFactory. The
// defaults register the region with its manager, populate it from the
// ViewRegistry, and keep ActiveAware and ContextAware views informed.
//
// Navigation is per region: a NavigationService loads the target view
// through the ContentLoader, activates it and records a JournalEntry so the
// Journal can go back and forward.
//
// Adapters and behaviors are discovered through Capabilities, an explicit
// catalog handed to the container at startup.
package region
