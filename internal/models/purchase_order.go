package models

import "time"

// PurchaseOrder represents a draft order against a supplier, consolidated
// from open restock recommendations. The PO number is derived from the
// creation timestamp at second granularity.
type PurchaseOrder struct {
	ID         string `gorm:"primary_key"`
	OrgID      string
	LocationID string `gorm:"index"`
	SupplierID string `gorm:"index"`
	PONumber   string `gorm:"column:po_number"`
	CreatedAt  time.Time
}

// TableName sets the table name for PurchaseOrder
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLine represents one ingredient line on a purchase order.
// Unique per (po, ingredient) so re-running consolidation updates in place.
type PurchaseOrderLine struct {
	ID           string  `gorm:"primary_key"`
	POID         string  `gorm:"column:po_id;unique_index:uq_po_line"`
	IngredientID string  `gorm:"unique_index:uq_po_line"`
	QtyPacks     float64
	PricePerPack float64
}

// TableName sets the table name for PurchaseOrderLine
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_items"
}
