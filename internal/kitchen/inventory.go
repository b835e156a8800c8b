package kitchen

import (
	"errors"
	"log"
	"time"

	"kitchenops/internal/models"
	"kitchenops/internal/store"
)

// errNoRecommendations signals an empty consolidation set inside the PO
// drafting transaction so nothing gets written.
var errNoRecommendations = errors.New("no restock recommendations for supplier")

// InventoryController consolidates restock recommendations into purchase
// order drafts, suggests stock-based substitutes, and records waste.
type InventoryController struct {
	store store.Store
	cfg   Config
	now   func() time.Time
}

// NewInventoryController creates a controller over the given store.
func NewInventoryController(st store.Store, cfg Config) *InventoryController {
	return &InventoryController{store: st, cfg: cfg, now: time.Now}
}

// ListRestockRisks returns the location's open restock recommendations with
// ingredient and supplier names resolved.
func (c *InventoryController) ListRestockRisks(locationID string) (Result, error) {
	log.Printf("Listing restock risks | location_id=%s", locationID)
	risks, err := c.store.Restocks().ForLocation(locationID)
	if err != nil {
		return Result{}, err
	}
	payload := make([]map[string]interface{}, 0, len(risks))
	for _, risk := range risks {
		entry := map[string]interface{}{
			"id":                    risk.ID,
			"ingredient_id":         risk.IngredientID,
			"ingredient_name":       risk.IngredientName,
			"recommended_qty_packs": risk.RecommendedQtyPacks,
			"supplier_id":           risk.SupplierID,
			"supplier_name":         risk.SupplierName,
			"rationale":             risk.Rationale(),
			"created_at":            risk.CreatedAt.Format(time.RFC3339),
		}
		payload = append(payload, entry)
	}
	return Success(map[string]interface{}{"recommendations": payload}), nil
}

// DraftPurchaseOrder consolidates the location's recommendations that match
// the target supplier (or name no supplier) into one purchase order draft.
// The header and every line commit in a single transaction; re-running
// upserts lines on (po, ingredient) instead of duplicating them. An empty
// recommendation set is an expected outcome and returns an error envelope
// with no PO row created.
func (c *InventoryController) DraftPurchaseOrder(locationID, supplierID string) (Result, error) {
	log.Printf("Creating PO from recommendations | location_id=%s supplier_id=%s", locationID, supplierID)

	var poID, poNumber string
	var linePayload []map[string]interface{}
	err := c.store.Transaction(func(tx store.Store) error {
		recs, err := tx.Restocks().ForSupplier(locationID, supplierID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return errNoRecommendations
		}
		poNumber = "PO-" + c.now().UTC().Format("20060102150405")
		po := &models.PurchaseOrder{
			LocationID: locationID,
			SupplierID: supplierID,
			PONumber:   poNumber,
			CreatedAt:  c.now().UTC(),
		}
		if err := tx.PurchaseOrders().Create(po); err != nil {
			return err
		}
		poID = po.ID
		linePayload = make([]map[string]interface{}, 0, len(recs))
		for _, rec := range recs {
			line := &models.PurchaseOrderLine{
				POID:         poID,
				IngredientID: rec.IngredientID,
				QtyPacks:     rec.QtyPacks,
				PricePerPack: rec.PricePerPack,
			}
			if err := tx.PurchaseOrders().UpsertLine(line); err != nil {
				return err
			}
			linePayload = append(linePayload, map[string]interface{}{
				"ingredient_id":   rec.IngredientID,
				"ingredient_name": rec.IngredientName,
				"qty_packs":       rec.QtyPacks,
				"price_per_pack":  rec.PricePerPack,
			})
		}
		return nil
	})
	if errors.Is(err, errNoRecommendations) {
		return Errorf("No restock recommendations available for the supplier"), nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Location %s not found", locationID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Purchase order drafted", map[string]interface{}{
		"po_id":     poID,
		"po_number": poNumber,
		"lines":     linePayload,
	}), nil
}

// SuggestSubstitute finds up to three ingredients sharing the unit of
// measure, ranked by on-hand stock. This is a stock-availability heuristic,
// not a culinary substitution rule.
func (c *InventoryController) SuggestSubstitute(ingredientID string) (Result, error) {
	log.Printf("Suggesting substitute | ingredient_id=%s", ingredientID)
	ingredient, err := c.store.Ingredients().Get(ingredientID)
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Ingredient %s not found", ingredientID), nil
	}
	if err != nil {
		return Result{}, err
	}
	candidates, err := c.store.Ingredients().Substitutes(ingredient.Unit, ingredientID, c.cfg.SubstituteLimit)
	if err != nil {
		return Result{}, err
	}
	candidatePayload := make([]map[string]interface{}, 0, len(candidates))
	for _, candidate := range candidates {
		candidatePayload = append(candidatePayload, map[string]interface{}{
			"id":      candidate.IngredientID,
			"name":    candidate.Name,
			"on_hand": candidate.OnHand,
			"unit":    candidate.Unit,
		})
	}
	return Success(map[string]interface{}{
		"ingredient": map[string]interface{}{
			"id":   ingredient.ID,
			"name": ingredient.Name,
			"unit": ingredient.Unit,
		},
		"candidates": candidatePayload,
	}), nil
}

// WasteEntry carries the parameters of a waste record. Menu item and
// ingredient are both optional.
type WasteEntry struct {
	LocationID   string
	MenuItemID   *string
	IngredientID *string
	Qty          float64
	Reason       string
}

// LogWaste appends a waste event for traceability. Events are never mutated
// after insert.
func (c *InventoryController) LogWaste(entry WasteEntry) (Result, error) {
	log.Printf("Logging waste | location_id=%s qty=%v reason=%s", entry.LocationID, entry.Qty, entry.Reason)
	event := &models.WasteEvent{
		LocationID:   entry.LocationID,
		MenuItemID:   entry.MenuItemID,
		IngredientID: entry.IngredientID,
		Qty:          entry.Qty,
		Reason:       entry.Reason,
		OccurredAt:   c.now().UTC(),
	}
	if err := c.store.Waste().Append(event); err != nil {
		return Result{}, err
	}
	return TextSuccess("Waste event recorded", map[string]interface{}{
		"id":          event.ID,
		"occurred_at": event.OccurredAt.Format(time.RFC3339),
	}), nil
}
