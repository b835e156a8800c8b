package store

import (
	"time"

	"kitchenops/internal/models"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string  { return &v }

// DemoDataset builds a small self-consistent dataset for demo mode and tests:
// one sushi kitchen with a forecasted dinner rush, a ticket already past its
// SLA, and an open restock recommendation ready to consolidate into a PO.
// Entity IDs are fixed so demo requests can be scripted.
func DemoDataset() *Dataset {
	now := time.Now().UTC().Truncate(time.Minute)
	windowStart := now.Add(30 * time.Minute)

	return &Dataset{
		Orgs: []models.Org{
			{ID: "org-demo", Name: "Talasco Demo Kitchens", Timezone: "Asia/Kuala_Lumpur"},
		},
		Locations: []models.Location{
			{ID: "loc-hq", OrgID: "org-demo", Name: "Bukit Bintang HQ", Address: "12 Jalan Alor, Kuala Lumpur"},
		},
		Stations: []models.Station{
			{ID: "station-maki", LocationID: "loc-hq", Name: "Maki Station", Kind: "cold"},
			{ID: "station-fry", LocationID: "loc-hq", Name: "Tempura Fry", Kind: "hot"},
		},
		MenuItems: []models.MenuItem{
			{ID: "item-california", OrgID: "org-demo", Name: "California Roll", Category: "maki", AvgPrepMinutes: 6},
			{ID: "item-salmon-nigiri", OrgID: "org-demo", Name: "Salmon Nigiri", Category: "nigiri", AvgPrepMinutes: 4},
		},
		Ingredients: []models.Ingredient{
			{ID: "ing-rice", OrgID: "org-demo", SKU: "RICE-25", Name: "Sushi Rice", Unit: "kg", ShelfLifeHours: 24},
			{ID: "ing-nori", OrgID: "org-demo", SKU: "NORI-50", Name: "Nori Sheets", Unit: "sheet", ShelfLifeHours: 720},
			{ID: "ing-salmon", OrgID: "org-demo", SKU: "SALM-F", Name: "Fresh Salmon", Unit: "kg", ShelfLifeHours: 48},
		},
		Suppliers: []models.Supplier{
			{ID: "sup-saba", OrgID: "org-demo", Name: "Saba Fresh Supply", Email: "orders@sabafresh.example", LeadTimeDays: 2},
		},
		SupplierPrices: []models.IngredientSupplier{
			{ID: "price-rice", IngredientID: "ing-rice", SupplierID: "sup-saba", PackSize: 25, PackUnit: "kg", PricePerPack: 45, IsPrimary: true},
			{ID: "price-nori", IngredientID: "ing-nori", SupplierID: "sup-saba", PackSize: 50, PackUnit: "sheet", PricePerPack: 18, IsPrimary: true},
		},
		RecipeLines: []models.RecipeLine{
			{ID: "recipe-cal-rice", MenuItemID: "item-california", IngredientID: "ing-rice", Qty: 0.15, Unit: "kg"},
			{ID: "recipe-cal-nori", MenuItemID: "item-california", IngredientID: "ing-nori", Qty: 1, Unit: "sheet"},
			{ID: "recipe-nigiri-rice", MenuItemID: "item-salmon-nigiri", IngredientID: "ing-rice", Qty: 0.05, Unit: "kg"},
			{ID: "recipe-nigiri-salmon", MenuItemID: "item-salmon-nigiri", IngredientID: "ing-salmon", Qty: 0.03, Unit: "kg"},
		},
		Inventory: []models.InventoryLevel{
			{ID: "inv-rice", LocationID: "loc-hq", IngredientID: "ing-rice", OnHand: 8, Unit: "kg", ParLevel: 20, ReorderPoint: 10},
			{ID: "inv-nori", LocationID: "loc-hq", IngredientID: "ing-nori", OnHand: 1, Unit: "sheet", ParLevel: 100, ReorderPoint: 40},
			{ID: "inv-salmon", LocationID: "loc-hq", IngredientID: "ing-salmon", OnHand: 2.4, Unit: "kg", ParLevel: 5, ReorderPoint: 2},
		},
		Forecasts: []models.DemandForecast{
			{
				ID: "fc-cal-1", LocationID: "loc-hq", MenuItemID: "item-california",
				BucketStart: windowStart, BucketEnd: windowStart.Add(time.Hour), ExpectedQty: 24,
			},
			{
				ID: "fc-cal-2", LocationID: "loc-hq", MenuItemID: "item-california",
				BucketStart: windowStart.Add(time.Hour), BucketEnd: windowStart.Add(2 * time.Hour), ExpectedQty: 12,
			},
			{
				ID: "fc-nigiri-1", LocationID: "loc-hq", MenuItemID: "item-salmon-nigiri",
				BucketStart: windowStart, BucketEnd: windowStart.Add(time.Hour), ExpectedQty: 18,
			},
		},
		Orders: []models.Order{
			{ID: "order-41", LocationID: "loc-hq", Source: "dine_in", Status: "open", TableNumber: "12", PlacedAt: now.Add(-50 * time.Minute)},
		},
		OrderItems: []models.OrderItem{
			{ID: "oi-41-1", OrderID: "order-41", MenuItemID: "item-california", Qty: 2, Status: "sent", CreatedAt: now.Add(-50 * time.Minute)},
			{ID: "oi-41-2", OrderID: "order-41", MenuItemID: "item-salmon-nigiri", Qty: 1, Status: "sent", CreatedAt: now.Add(-50 * time.Minute)},
		},
		Tickets: []models.Ticket{
			{
				ID: "ticket-late", OrderItemID: "oi-41-1", StationID: "station-maki",
				Status: string(models.TicketStatusQueued), PriorityScore: ptrFloat(0.95),
				PriorityReasonJSON: `{"signals":["table_waiting_long","vip_table"]}`,
				SLAMinutes:         12, EnqueuedAt: now.Add(-45 * time.Minute),
			},
			{
				ID: "ticket-fresh", OrderItemID: "oi-41-2", StationID: "station-maki",
				Status: string(models.TicketStatusQueued),
				SLAMinutes: 10, EnqueuedAt: now.Add(-3 * time.Minute),
			},
		},
		SLATargets: []models.StationSLA{
			{ID: "sla-maki-dinner", StationID: "station-maki", Daypart: string(models.DaypartDinner), TargetPrepMinutes: 12, AlertAfterMinutes: 15},
			{ID: "sla-maki-lunch", StationID: "station-maki", Daypart: string(models.DaypartLunch), TargetPrepMinutes: 10, AlertAfterMinutes: 12},
		},
		Restocks: []models.RestockRecommendation{
			{
				ID: "restock-nori", LocationID: "loc-hq", IngredientID: "ing-nori",
				RecommendedQtyPacks: 8, SupplierID: ptrString("sup-saba"), RecommendedBy: "inventory-controller",
				RationaleJSON: `{"on_hand":1,"reorder_point":40,"par_level":100}`,
				CreatedAt:     now.Add(-2 * time.Hour),
			},
			{
				ID: "restock-rice", LocationID: "loc-hq", IngredientID: "ing-rice",
				RecommendedQtyPacks: 1, RecommendedBy: "inventory-controller",
				RationaleJSON: `{"on_hand":8,"reorder_point":10,"par_level":20}`,
				CreatedAt:     now.Add(-90 * time.Minute),
			},
		},
		Alerts: []models.Alert{
			{
				ID: "alert-maki-sla", OrgID: "org-demo", LocationID: "loc-hq",
				Kind: "sla_breach", Severity: string(models.SeverityCritical),
				EntityJSON: `{"ticket_id":"ticket-late","station_id":"station-maki"}`,
				Message:    "Maki Station ticket 45m elapsed against a 12m SLA",
				DetectedAt: now.Add(-10 * time.Minute),
			},
		},
	}
}
