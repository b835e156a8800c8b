package models

import "time"

// RestockRecommendation represents an upstream reorder suggestion for an
// ingredient at a location. Consumed read-only here except when consolidated
// into a purchase order. A nil SupplierID means any supplier may fill it.
type RestockRecommendation struct {
	ID                  string  `gorm:"primary_key"`
	LocationID          string  `gorm:"index"`
	IngredientID        string  `gorm:"index"`
	RecommendedQtyPacks float64
	SupplierID          *string
	RecommendedBy       string
	RationaleJSON       string `gorm:"column:rationale;type:text"`
	CreatedAt           time.Time
}

// TableName sets the table name for RestockRecommendation
func (RestockRecommendation) TableName() string {
	return "restock_recommendations"
}

// Rationale returns the decoded recommendation explanation, or the raw blob
// when it does not parse.
func (r *RestockRecommendation) Rationale() interface{} {
	return DecodeJSON(r.RationaleJSON)
}
