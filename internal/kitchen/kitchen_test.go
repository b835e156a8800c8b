package kitchen

import (
	"time"

	"kitchenops/internal/models"
	"kitchenops/internal/store"
)

// testBase is the frozen wall clock the fixtures are built around.
var testBase = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// newTestStore builds a small sushi kitchen: one location, one station, two
// menu items, a constrained nori supply, two queued tickets (one long past
// its SLA) and two open restock recommendations.
func newTestStore() *store.MemoryStore {
	return store.NewMemoryStore(&store.Dataset{
		Orgs: []models.Org{
			{ID: "org-1", Name: "Test Kitchens", Timezone: "UTC"},
		},
		Locations: []models.Location{
			{ID: "loc-1", OrgID: "org-1", Name: "Test HQ"},
		},
		Stations: []models.Station{
			{ID: "st-1", LocationID: "loc-1", Name: "Maki Station", Kind: "cold"},
		},
		MenuItems: []models.MenuItem{
			{ID: "mi-roll", OrgID: "org-1", Name: "California Roll", Category: "maki"},
			{ID: "mi-nigiri", OrgID: "org-1", Name: "Salmon Nigiri", Category: "nigiri"},
		},
		Ingredients: []models.Ingredient{
			{ID: "ing-rice", OrgID: "org-1", Name: "Sushi Rice", Unit: "kg"},
			{ID: "ing-nori", OrgID: "org-1", Name: "Nori Sheets", Unit: "sheet"},
			{ID: "ing-salmon", OrgID: "org-1", Name: "Fresh Salmon", Unit: "kg"},
			{ID: "ing-tuna", OrgID: "org-1", Name: "Fresh Tuna", Unit: "kg"},
		},
		Suppliers: []models.Supplier{
			{ID: "sup-1", OrgID: "org-1", Name: "Saba Fresh Supply"},
		},
		SupplierPrices: []models.IngredientSupplier{
			{ID: "pr-nori", IngredientID: "ing-nori", SupplierID: "sup-1", PricePerPack: 18},
			{ID: "pr-rice", IngredientID: "ing-rice", SupplierID: "sup-1", PricePerPack: 45},
		},
		RecipeLines: []models.RecipeLine{
			{ID: "rc-1", MenuItemID: "mi-roll", IngredientID: "ing-rice", Qty: 0.15, Unit: "kg"},
			{ID: "rc-2", MenuItemID: "mi-roll", IngredientID: "ing-nori", Qty: 1, Unit: "sheet"},
			{ID: "rc-3", MenuItemID: "mi-nigiri", IngredientID: "ing-rice", Qty: 0.05, Unit: "kg"},
			{ID: "rc-4", MenuItemID: "mi-nigiri", IngredientID: "ing-salmon", Qty: 0.03, Unit: "kg"},
		},
		Inventory: []models.InventoryLevel{
			{ID: "inv-1", LocationID: "loc-1", IngredientID: "ing-rice", OnHand: 8, Unit: "kg"},
			{ID: "inv-2", LocationID: "loc-1", IngredientID: "ing-nori", OnHand: 1, Unit: "sheet"},
			{ID: "inv-3", LocationID: "loc-1", IngredientID: "ing-salmon", OnHand: 2.4, Unit: "kg"},
		},
		Forecasts: []models.DemandForecast{
			{
				ID: "fc-1", LocationID: "loc-1", MenuItemID: "mi-roll",
				BucketStart: testBase.Add(30 * time.Minute), BucketEnd: testBase.Add(90 * time.Minute),
				ExpectedQty: 24,
			},
			{
				ID: "fc-2", LocationID: "loc-1", MenuItemID: "mi-roll",
				BucketStart: testBase.Add(90 * time.Minute), BucketEnd: testBase.Add(150 * time.Minute),
				ExpectedQty: 12,
			},
			{
				ID: "fc-3", LocationID: "loc-1", MenuItemID: "mi-nigiri",
				BucketStart: testBase.Add(30 * time.Minute), BucketEnd: testBase.Add(90 * time.Minute),
				ExpectedQty: 18,
			},
		},
		Orders: []models.Order{
			{ID: "ord-1", LocationID: "loc-1", TableNumber: "12", PlacedAt: testBase.Add(-50 * time.Minute)},
		},
		OrderItems: []models.OrderItem{
			{ID: "oi-1", OrderID: "ord-1", MenuItemID: "mi-roll", Qty: 2},
			{ID: "oi-2", OrderID: "ord-1", MenuItemID: "mi-nigiri", Qty: 1},
		},
		Tickets: []models.Ticket{
			{
				ID: "tk-late", OrderItemID: "oi-1", StationID: "st-1",
				Status: string(models.TicketStatusQueued), PriorityScore: floatPtr(0.95),
				PriorityReasonJSON: `{"signals":["table_waiting_long"]}`,
				SLAMinutes:         12, EnqueuedAt: testBase.Add(-45 * time.Minute),
			},
			{
				ID: "tk-fresh", OrderItemID: "oi-2", StationID: "st-1",
				Status:     string(models.TicketStatusQueued),
				SLAMinutes: 10, EnqueuedAt: testBase.Add(-3 * time.Minute),
			},
		},
		Restocks: []models.RestockRecommendation{
			{
				ID: "rr-nori", LocationID: "loc-1", IngredientID: "ing-nori",
				RecommendedQtyPacks: 8, SupplierID: strPtr("sup-1"),
				RationaleJSON: `{"on_hand":1,"reorder_point":40}`,
				CreatedAt:     testBase.Add(-2 * time.Hour),
			},
			{
				ID: "rr-rice", LocationID: "loc-1", IngredientID: "ing-rice",
				RecommendedQtyPacks: 1,
				CreatedAt:           testBase.Add(-1 * time.Hour),
			},
		},
		Alerts: []models.Alert{
			{
				ID: "al-1", OrgID: "org-1", LocationID: "loc-1",
				Kind: "sla_breach", Severity: string(models.SeverityCritical),
				Message: "Maki Station ticket past SLA", DetectedAt: testBase.Add(-10 * time.Minute),
			},
		},
	})
}

// frozen returns a clock pinned to the fixture base time.
func frozen() func() time.Time {
	return func() time.Time { return testBase }
}

// payloadOf extracts the structured payload from a result envelope.
func payloadOf(result Result) map[string]interface{} {
	for _, item := range result.Content {
		if payload, ok := item.JSON.(map[string]interface{}); ok {
			return payload
		}
	}
	return nil
}

// textOf extracts the first human-readable line from a result envelope.
func textOf(result Result) string {
	for _, item := range result.Content {
		if item.Text != "" {
			return item.Text
		}
	}
	return ""
}
