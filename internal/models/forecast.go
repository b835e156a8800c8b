package models

import "time"

// DemandForecast represents one forecasted demand bucket for a menu item at a
// location. Buckets are half-open intervals [BucketStart, BucketEnd); several
// buckets may fall inside one planning window and their quantities are summed.
type DemandForecast struct {
	ID          string    `gorm:"primary_key"`
	LocationID  string    `gorm:"unique_index:uq_forecast_bucket"`
	MenuItemID  string    `gorm:"unique_index:uq_forecast_bucket"`
	BucketStart time.Time `gorm:"unique_index:uq_forecast_bucket"`
	BucketEnd   time.Time `gorm:"unique_index:uq_forecast_bucket"`
	ExpectedQty float64
	FeaturesJSON string `gorm:"column:features;type:text"`
}

// TableName sets the table name for DemandForecast
func (DemandForecast) TableName() string {
	return "demand_forecasts"
}
