package shell

import "bootkit/internal/region"

// Regions declared by the default main window.
const (
	MainRegion       = "MainRegion"
	NavigationRegion = "NavigationRegion"
	TabsRegion       = "TabsRegion"
)

// DefaultTargets returns the region targets of the default main window.
func DefaultTargets() []region.Target {
	return []region.Target{
		{RegionName: MainRegion, Kind: region.ContentControl},
		{RegionName: NavigationRegion, Kind: region.ItemsControl},
		{RegionName: TabsRegion, Kind: region.Selector},
	}
}
