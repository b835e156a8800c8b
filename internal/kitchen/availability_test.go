package kitchen

import (
	"testing"

	"kitchenops/internal/models"
	"kitchenops/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailablePortionsScarcestIngredientBinds(t *testing.T) {
	resolver := NewAvailabilityResolver(newTestStore())

	// Rice covers 8/0.15 = 53.3 portions but a single nori sheet caps the
	// roll at one portion.
	portions, err := resolver.AvailablePortions("loc-1", "mi-roll")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, portions, 1e-9)
}

func TestAvailablePortionsMultipleIngredients(t *testing.T) {
	resolver := NewAvailabilityResolver(newTestStore())

	// Nigiri: rice allows 160, salmon allows 80; salmon binds.
	portions, err := resolver.AvailablePortions("loc-1", "mi-nigiri")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, portions, 1e-9)
}

func TestAvailablePortionsNoRecipe(t *testing.T) {
	resolver := NewAvailabilityResolver(newTestStore())

	portions, err := resolver.AvailablePortions("loc-1", "mi-unknown")
	require.NoError(t, err)
	assert.Zero(t, portions)
}

func TestAvailablePortionsMissingInventoryReadsZero(t *testing.T) {
	st := store.NewMemoryStore(&store.Dataset{
		MenuItems: []models.MenuItem{{ID: "mi-1", Name: "Dish"}},
		RecipeLines: []models.RecipeLine{
			{ID: "rc-1", MenuItemID: "mi-1", IngredientID: "ing-1", Qty: 0.5, Unit: "kg"},
		},
	})
	resolver := NewAvailabilityResolver(st)

	// No inventory row for the only ingredient: zero on hand, zero portions.
	portions, err := resolver.AvailablePortions("loc-1", "mi-1")
	require.NoError(t, err)
	assert.Zero(t, portions)
}

func TestAvailablePortionsNonBindingLinesIgnored(t *testing.T) {
	st := store.NewMemoryStore(&store.Dataset{
		MenuItems: []models.MenuItem{{ID: "mi-1", Name: "Dish"}},
		RecipeLines: []models.RecipeLine{
			{ID: "rc-1", MenuItemID: "mi-1", IngredientID: "ing-1", Qty: 0.5, Unit: "kg"},
			{ID: "rc-2", MenuItemID: "mi-1", IngredientID: "ing-2", Qty: 0, Unit: "pinch"},
		},
		Inventory: []models.InventoryLevel{
			{ID: "inv-1", LocationID: "loc-1", IngredientID: "ing-1", OnHand: 4, Unit: "kg"},
		},
	})
	resolver := NewAvailabilityResolver(st)

	portions, err := resolver.AvailablePortions("loc-1", "mi-1")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, portions, 1e-9)
}
