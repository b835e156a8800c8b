package models

import "time"

// Order represents a guest order placed at a location.
type Order struct {
	ID          string `gorm:"primary_key"`
	LocationID  string `gorm:"index"`
	Source      string
	Status      string
	TableNumber string
	PlacedAt    time.Time
}

// OrderItem represents one ordered dish; tickets reference order items.
type OrderItem struct {
	ID         string `gorm:"primary_key"`
	OrderID    string `gorm:"index"`
	MenuItemID string `gorm:"index"`
	Qty        float64
	Status     string
	CreatedAt  time.Time
}
