package store

import (
	"errors"
	"time"

	"kitchenops/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// DemandTotal represents forecasted demand summed per menu item over a window.
type DemandTotal struct {
	MenuItemID  string
	ExpectedQty float64
}

// IngredientStock represents one recipe line joined with the inventory level
// at a location. A missing inventory row reads as zero on hand.
type IngredientStock struct {
	IngredientID string
	Qty          float64
	OnHand       float64
	Unit         string
}

// PlanHeader represents a prep plan joined with its location name.
type PlanHeader struct {
	models.PrepPlan
	LocationName string
}

// PlanLine represents a stored plan line joined with its menu item name.
type PlanLine struct {
	models.PrepPlanLine
	MenuItemName string
}

// TicketContext represents a ticket joined with its order item, menu item and
// order, used to explain why the ticket is prioritised.
type TicketContext struct {
	models.Ticket
	MenuItemID   string
	MenuItemName string
	Qty          float64
	TableNumber  string
	PlacedAt     time.Time
}

// Breach represents an open ticket that has exceeded its wait-time SLA.
type Breach struct {
	TicketID       string
	StationID      string
	StationName    string
	MinutesElapsed float64
	SLAMinutes     float64
}

// RestockRisk represents a restock recommendation joined with ingredient and
// supplier names.
type RestockRisk struct {
	models.RestockRecommendation
	IngredientName string
	SupplierName   string
}

// RestockLine represents a recommendation matched to a target supplier with
// the resolved pack price (zero when no price list row exists).
type RestockLine struct {
	IngredientID   string
	IngredientName string
	QtyPacks       float64
	PricePerPack   float64
}

// SubstituteCandidate represents an ingredient sharing a unit of measure with
// the one being replaced, with its on-hand stock. A nil OnHand means the
// ingredient carries no inventory row and ranks last.
type SubstituteCandidate struct {
	IngredientID string
	Name         string
	OnHand       *float64
	Unit         string
}

// ForecastRepo reads demand forecast buckets.
type ForecastRepo interface {
	// TotalsInWindow sums expected quantities per menu item over buckets whose
	// interval lies within [start, end].
	TotalsInWindow(locationID string, start, end time.Time) ([]DemandTotal, error)
}

// RecipeRepo reads bills of materials.
type RecipeRepo interface {
	// IngredientStock returns the menu item's recipe lines joined with the
	// location's inventory levels. Missing inventory reads as zero on hand.
	IngredientStock(locationID, menuItemID string) ([]IngredientStock, error)
}

// PlanRepo reads and writes prep plans and their lines.
type PlanRepo interface {
	FindByKey(locationID string, planFor time.Time) (*models.PrepPlan, error)
	Create(plan *models.PrepPlan) error
	DeleteLines(planID string) error
	UpsertLine(line *models.PrepPlanLine) error
	Get(planID string) (*PlanHeader, error)
	Lines(planID string) ([]PlanLine, error)
}

// TicketRepo reads and transitions kitchen tickets. The transition methods
// are conditional single-row updates: they return ErrNotFound when no row
// matched, and each is atomic with respect to concurrent callers.
type TicketRepo interface {
	// Queue returns the station's pending tickets ordered by priority score
	// descending with absent scores last, ties broken by enqueue time.
	Queue(stationID string, limit int) ([]models.Ticket, error)
	// MarkFiring sets the ticket firing; started_at is set only when unset.
	MarkFiring(id string, now time.Time) (*models.Ticket, error)
	// Requeue re-queues the ticket at enqueuedAt and multiplies a present
	// priority score by decay. An absent score stays absent.
	Requeue(id string, enqueuedAt time.Time, decay float64) (*models.Ticket, error)
	// MarkPassed completes the ticket.
	MarkPassed(id string, now time.Time) (*models.Ticket, error)
	Context(id string) (*TicketContext, error)
	// OpenBreaches returns open tickets past their SLA at the location,
	// most overdue first.
	OpenBreaches(locationID string, now time.Time) ([]Breach, error)
}

// AlertRepo transitions alerts.
type AlertRepo interface {
	Acknowledge(id string, now time.Time) (*models.Alert, error)
}

// RestockRepo reads restock recommendations.
type RestockRepo interface {
	ForLocation(locationID string) ([]RestockRisk, error)
	// ForSupplier returns recommendations whose supplier matches the target
	// or is unspecified, with pack prices resolved from the supplier's price
	// list (zero when absent).
	ForSupplier(locationID, supplierID string) ([]RestockLine, error)
}

// PurchaseOrderRepo writes purchase order drafts.
type PurchaseOrderRepo interface {
	// Create fills the org from the location and returns ErrNotFound when the
	// location does not exist.
	Create(po *models.PurchaseOrder) error
	UpsertLine(line *models.PurchaseOrderLine) error
}

// IngredientRepo reads the ingredient catalog.
type IngredientRepo interface {
	Get(id string) (*models.Ingredient, error)
	// Substitutes returns other ingredients sharing the unit, ranked by
	// on-hand stock descending with unstocked ingredients last.
	Substitutes(unit, excludeID string, limit int) ([]SubstituteCandidate, error)
}

// WasteRepo appends waste events.
type WasteRepo interface {
	Append(event *models.WasteEvent) error
}

// Store bundles the per-entity repositories behind one transactional surface.
// The core owns no state between calls; every operation is a stateless
// transformation of a transactional read and/or write against a Store.
type Store interface {
	Forecasts() ForecastRepo
	Recipes() RecipeRepo
	Plans() PlanRepo
	Tickets() TicketRepo
	Alerts() AlertRepo
	Restocks() RestockRepo
	PurchaseOrders() PurchaseOrderRepo
	Ingredients() IngredientRepo
	Waste() WasteRepo

	// Transaction runs fn against a transactional view of the store. All
	// writes commit together; any error rolls the whole transaction back and
	// no partial state becomes visible.
	Transaction(fn func(Store) error) error
}
