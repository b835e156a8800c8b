package models

// RecipeLine represents one ingredient requirement in a menu item's bill of
// materials. Qty is the amount consumed per portion; a line with Qty <= 0 is
// non-binding and never constrains availability.
type RecipeLine struct {
	ID           string  `gorm:"primary_key"`
	MenuItemID   string  `gorm:"unique_index:uq_recipe_line"`
	IngredientID string  `gorm:"unique_index:uq_recipe_line"`
	Qty          float64
	Unit         string
}

// TableName sets the table name for RecipeLine
func (RecipeLine) TableName() string {
	return "recipes"
}

// Binding reports whether this line constrains how many portions can be made.
func (r RecipeLine) Binding() bool {
	return r.Qty > 0
}
