// Package kitchen implements the decision layer of the kitchen operations
// system: prep planning, station dispatch, SLA watching and inventory
// control. Every operation reads and writes through a store.Store and returns
// a uniform Result envelope; invalid input raises a ValidationError before
// anything touches the store.
package kitchen

import "kitchenops/internal/store"

// Service bundles the decision components over a shared store.
type Service struct {
	Availability *AvailabilityResolver
	Planner      *PrepPlanner
	Dispatcher   *StationDispatcher
	Watchdog     *SLAWatchdog
	Inventory    *InventoryController
}

// NewService wires every component to the same store and configuration.
func NewService(st store.Store, cfg Config) *Service {
	return &Service{
		Availability: NewAvailabilityResolver(st),
		Planner:      NewPrepPlanner(st, cfg),
		Dispatcher:   NewStationDispatcher(st, cfg),
		Watchdog:     NewSLAWatchdog(st, cfg),
		Inventory:    NewInventoryController(st, cfg),
	}
}
