package models

// Org represents a restaurant group operating one or more locations.
type Org struct {
	ID       string `gorm:"primary_key"`
	Name     string
	Timezone string
}

// TableName sets the table name for Org
func (Org) TableName() string {
	return "orgs"
}

// Location represents a single restaurant site.
type Location struct {
	ID      string `gorm:"primary_key"`
	OrgID   string `gorm:"index"`
	Name    string
	Address string
}

// Station represents a kitchen work station within a location.
type Station struct {
	ID         string `gorm:"primary_key"`
	LocationID string `gorm:"index"`
	Name       string
	Kind       string
}

// MenuItem represents a sellable dish measured in portions.
type MenuItem struct {
	ID             string `gorm:"primary_key"`
	OrgID          string `gorm:"index"`
	Name           string
	Category       string
	AvgPrepMinutes float64
}

// Ingredient represents a raw ingredient tracked in inventory.
type Ingredient struct {
	ID             string `gorm:"primary_key"`
	OrgID          string `gorm:"index"`
	SKU            string `gorm:"column:sku"`
	Name           string
	Unit           string
	ShelfLifeHours float64
}

// Supplier represents an ingredient vendor.
type Supplier struct {
	ID           string `gorm:"primary_key"`
	OrgID        string `gorm:"index"`
	Name         string
	Email        string
	LeadTimeDays int
}

// IngredientSupplier represents one row of the ingredient-supplier price list.
// Unique per (ingredient, supplier).
type IngredientSupplier struct {
	ID           string  `gorm:"primary_key"`
	IngredientID string  `gorm:"unique_index:uq_ingredient_supplier"`
	SupplierID   string  `gorm:"unique_index:uq_ingredient_supplier"`
	PackSize     float64
	PackUnit     string
	PricePerPack float64
	IsPrimary    bool
}

// TableName sets the table name for IngredientSupplier
func (IngredientSupplier) TableName() string {
	return "ingredient_suppliers"
}
