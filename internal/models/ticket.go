package models

import "time"

// TicketStatus represents the lifecycle state of a kitchen ticket
type TicketStatus string

const (
	// Ticket statuses
	TicketStatusQueued TicketStatus = "queued"
	TicketStatusFiring TicketStatus = "firing"
	TicketStatusPassed TicketStatus = "passed"
)

// Ticket represents a kitchen display ticket queued at a station.
// Lifecycle: queued -> firing -> passed; a hold re-queues the ticket with a
// shifted enqueue time and a decayed priority score. Passed is terminal.
type Ticket struct {
	ID                 string `gorm:"primary_key"`
	OrderItemID        string `gorm:"index"`
	StationID          string `gorm:"index"`
	Status             string
	PriorityScore      *float64
	PriorityReasonJSON string `gorm:"column:priority_reason;type:text"`
	SLAMinutes         float64 `gorm:"column:sla_minutes"`
	EnqueuedAt         time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "kds_tickets"
}

// PriorityReason returns the decoded priority explanation, or the raw blob
// when it does not parse.
func (t *Ticket) PriorityReason() interface{} {
	return DecodeJSON(t.PriorityReasonJSON)
}

// Open reports whether the ticket is still waiting to be completed.
func (t *Ticket) Open() bool {
	return t.Status == string(TicketStatusQueued) || t.Status == string(TicketStatusFiring)
}

// Daypart represents a service period used to key SLA targets
type Daypart string

const (
	// Dayparts
	DaypartBreakfast Daypart = "breakfast"
	DaypartLunch     Daypart = "lunch"
	DaypartDinner    Daypart = "dinner"
)

// DaypartFor returns the service period a wall-clock time falls into.
func DaypartFor(t time.Time) Daypart {
	switch hour := t.Hour(); {
	case hour < 11:
		return DaypartBreakfast
	case hour < 17:
		return DaypartLunch
	default:
		return DaypartDinner
	}
}

// StationSLA represents the target service time for a station during a
// daypart. Unique per (station, daypart); maintained upstream.
type StationSLA struct {
	ID                string  `gorm:"primary_key"`
	StationID         string  `gorm:"unique_index:uq_station_daypart"`
	Daypart           string  `gorm:"unique_index:uq_station_daypart"`
	TargetPrepMinutes float64
	AlertAfterMinutes float64
}

// TableName sets the table name for StationSLA
func (StationSLA) TableName() string {
	return "station_sla"
}
