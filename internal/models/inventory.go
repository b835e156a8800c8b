package models

// InventoryLevel represents the stocked quantity of an ingredient at a
// location. At most one row exists per (location, ingredient). The unit is
// taken at face value; no conversion is applied against recipe units.
type InventoryLevel struct {
	ID           string  `gorm:"primary_key"`
	LocationID   string  `gorm:"unique_index:uq_inventory_level"`
	IngredientID string  `gorm:"unique_index:uq_inventory_level"`
	OnHand       float64
	Unit         string
	ParLevel     float64
	ReorderPoint float64
}

// TableName sets the table name for InventoryLevel
func (InventoryLevel) TableName() string {
	return "inventory_levels"
}
