package kitchen

import (
	"kitchenops/internal/store"
)

// AvailabilityResolver computes how many portions of a menu item the current
// inventory at a location can produce.
type AvailabilityResolver struct {
	store store.Store
}

// NewAvailabilityResolver creates a resolver over the given store.
func NewAvailabilityResolver(st store.Store) *AvailabilityResolver {
	return &AvailabilityResolver{store: st}
}

// AvailablePortions returns the maximum number of portions preparable from
// on-hand inventory, limited by the scarcest binding ingredient.
func (r *AvailabilityResolver) AvailablePortions(locationID, menuItemID string) (float64, error) {
	available, _, err := availablePortions(r.store, locationID, menuItemID)
	return available, err
}

// availablePortions computes availability against the given store view, so
// plan generation can resolve it inside its own transaction. It returns the
// per-ingredient breakdown alongside the minimum for rationale payloads.
//
// A menu item with no recipe lines has availability zero: nothing can be
// prepared from an unknown composition. Lines with a non-positive required
// quantity are non-binding and never constrain the minimum.
func availablePortions(st store.Store, locationID, menuItemID string) (float64, []store.IngredientStock, error) {
	lines, err := st.Recipes().IngredientStock(locationID, menuItemID)
	if err != nil {
		return 0, nil, err
	}
	available := 0.0
	bound := false
	for _, line := range lines {
		if line.Qty <= 0 {
			continue
		}
		possible := line.OnHand / line.Qty
		if !bound || possible < available {
			available = possible
			bound = true
		}
	}
	return available, lines, nil
}
