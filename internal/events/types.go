package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the severity of an event.
type EventType string

const (
	// EventTypeNormal indicates normal, non-problematic events.
	EventTypeNormal EventType = "Normal"

	// EventTypeWarning indicates events that may require attention.
	EventTypeWarning EventType = "Warning"
)

// EventReason is the topic an event is published under.
type EventReason string

// Module lifecycle topics
const (
	// TopicModuleLoaded is published after a module initialized successfully.
	TopicModuleLoaded EventReason = "ModuleLoaded"

	// TopicModuleLoadFailed is published when a module failed to initialize.
	TopicModuleLoadFailed EventReason = "ModuleLoadFailed"

	// TopicCatalogReloaded is published after a catalog file was reloaded.
	TopicCatalogReloaded EventReason = "CatalogReloaded"
)

// Region topics
const (
	// TopicRegionCreated is published when a delayed region is created.
	TopicRegionCreated EventReason = "RegionCreated"

	// TopicNavigated is published after a region navigated to a view.
	TopicNavigated EventReason = "Navigated"

	// TopicNavigationFailed is published when a navigation request failed.
	TopicNavigationFailed EventReason = "NavigationFailed"
)

// TopicBootstrapCompleted is published once the bootstrap sequence finished.
const TopicBootstrapCompleted EventReason = "BootstrapCompleted"

// EventData contains the data used for message templating.
type EventData struct {
	// Name is the subject of the event (module, region or view name).
	Name string

	// Region is the region name for region and navigation events.
	Region string

	// Target is the navigation target for navigation events.
	Target string

	// Arguments contains additional key-value data for the event.
	Arguments map[string]interface{}

	// Error contains error information for failure events.
	Error string

	// Duration is the duration of an operation.
	Duration time.Duration

	// Count is an item count, e.g. the number of modules loaded.
	Count int
}

// Event is one published occurrence.
type Event struct {
	ID        uuid.UUID
	Reason    EventReason
	Type      EventType
	Message   string
	Data      EventData
	Timestamp time.Time
}

// getEventType returns the appropriate EventType for a given EventReason.
func getEventType(reason EventReason) EventType {
	switch reason {
	case TopicModuleLoadFailed,
		TopicNavigationFailed:
		return EventTypeWarning
	default:
		return EventTypeNormal
	}
}
