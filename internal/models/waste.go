package models

import "time"

// WasteEvent represents an append-only record of discarded food. Either the
// menu item or the ingredient reference may be set, or both may be absent for
// untracked waste. Rows are never mutated after insert.
type WasteEvent struct {
	ID           string `gorm:"primary_key"`
	LocationID   string `gorm:"index"`
	MenuItemID   *string
	IngredientID *string
	Qty          float64
	Reason       string
	OccurredAt   time.Time
}

// TableName sets the table name for WasteEvent
func (WasteEvent) TableName() string {
	return "waste_events"
}
