package models

import "time"

// Severity represents an alert or breach severity tier
type Severity string

const (
	// Severity tiers
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert represents a detected operational condition awaiting acknowledgement.
// Acknowledgement is one-way: a nil AcknowledgedAt becomes a timestamp and
// never reverts.
type Alert struct {
	ID             string `gorm:"primary_key"`
	OrgID          string
	LocationID     string `gorm:"index"`
	Kind           string
	Severity       string
	EntityJSON     string `gorm:"column:entity;type:text"`
	Message        string
	DetectedAt     time.Time
	AcknowledgedAt *time.Time
}

// Entity returns the decoded entity reference, or the raw blob when it does
// not parse.
func (a *Alert) Entity() interface{} {
	return DecodeJSON(a.EntityJSON)
}

// Acknowledged reports whether the alert has been acknowledged.
func (a *Alert) Acknowledged() bool {
	return a.AcknowledgedAt != nil
}
