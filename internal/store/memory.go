package store

import (
	"sort"
	"sync"
	"time"

	"kitchenops/internal/models"

	"github.com/google/uuid"
)

// Dataset holds every table of the schema as plain slices. It is the backing
// state of the in-memory store and doubles as a fixture format for tests and
// demo seeding.
type Dataset struct {
	Orgs               []models.Org
	Locations          []models.Location
	Stations           []models.Station
	MenuItems          []models.MenuItem
	Ingredients        []models.Ingredient
	Suppliers          []models.Supplier
	SupplierPrices     []models.IngredientSupplier
	Forecasts          []models.DemandForecast
	RecipeLines        []models.RecipeLine
	Inventory          []models.InventoryLevel
	Plans              []models.PrepPlan
	PlanLines          []models.PrepPlanLine
	Restocks           []models.RestockRecommendation
	PurchaseOrders     []models.PurchaseOrder
	PurchaseOrderLines []models.PurchaseOrderLine
	Tickets            []models.Ticket
	Orders             []models.Order
	OrderItems         []models.OrderItem
	SLATargets         []models.StationSLA
	Alerts             []models.Alert
	Waste              []models.WasteEvent
}

func (d *Dataset) clone() *Dataset {
	c := &Dataset{}
	c.Orgs = append([]models.Org(nil), d.Orgs...)
	c.Locations = append([]models.Location(nil), d.Locations...)
	c.Stations = append([]models.Station(nil), d.Stations...)
	c.MenuItems = append([]models.MenuItem(nil), d.MenuItems...)
	c.Ingredients = append([]models.Ingredient(nil), d.Ingredients...)
	c.Suppliers = append([]models.Supplier(nil), d.Suppliers...)
	c.SupplierPrices = append([]models.IngredientSupplier(nil), d.SupplierPrices...)
	c.Forecasts = append([]models.DemandForecast(nil), d.Forecasts...)
	c.RecipeLines = append([]models.RecipeLine(nil), d.RecipeLines...)
	c.Inventory = append([]models.InventoryLevel(nil), d.Inventory...)
	c.Plans = append([]models.PrepPlan(nil), d.Plans...)
	c.PlanLines = append([]models.PrepPlanLine(nil), d.PlanLines...)
	c.Restocks = append([]models.RestockRecommendation(nil), d.Restocks...)
	c.PurchaseOrders = append([]models.PurchaseOrder(nil), d.PurchaseOrders...)
	c.PurchaseOrderLines = append([]models.PurchaseOrderLine(nil), d.PurchaseOrderLines...)
	c.Tickets = append([]models.Ticket(nil), d.Tickets...)
	c.Orders = append([]models.Order(nil), d.Orders...)
	c.OrderItems = append([]models.OrderItem(nil), d.OrderItems...)
	c.SLATargets = append([]models.StationSLA(nil), d.SLATargets...)
	c.Alerts = append([]models.Alert(nil), d.Alerts...)
	c.Waste = append([]models.WasteEvent(nil), d.Waste...)
	return c
}

// MemoryStore implements Store entirely in memory. It backs the demo mode and
// lets the decision components be tested without a database. Transactions
// mutate a private copy of the dataset and swap it in on success, so a failed
// transaction leaves no partial state behind.
type MemoryStore struct {
	mu   sync.RWMutex
	data *Dataset
}

// NewMemoryStore creates an in-memory store over the given dataset. A nil
// dataset starts empty.
func NewMemoryStore(data *Dataset) *MemoryStore {
	if data == nil {
		data = &Dataset{}
	}
	return &MemoryStore{data: data}
}

func (s *MemoryStore) Forecasts() ForecastRepo           { return memForecasts{s} }
func (s *MemoryStore) Recipes() RecipeRepo               { return memRecipes{s} }
func (s *MemoryStore) Plans() PlanRepo                   { return memPlans{s} }
func (s *MemoryStore) Tickets() TicketRepo               { return memTickets{s} }
func (s *MemoryStore) Alerts() AlertRepo                 { return memAlerts{s} }
func (s *MemoryStore) Restocks() RestockRepo             { return memRestocks{s} }
func (s *MemoryStore) PurchaseOrders() PurchaseOrderRepo { return memPurchaseOrders{s} }
func (s *MemoryStore) Ingredients() IngredientRepo       { return memIngredients{s} }
func (s *MemoryStore) Waste() WasteRepo                  { return memWaste{s} }

// Transaction clones the dataset, runs fn against a store over the clone, and
// swaps the clone in only when fn succeeds.
func (s *MemoryStore) Transaction(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scratch := &MemoryStore{data: s.data.clone()}
	if err := fn(scratch); err != nil {
		return err
	}
	s.data = scratch.data
	return nil
}

type memForecasts struct{ s *MemoryStore }

func (r memForecasts) TotalsInWindow(locationID string, start, end time.Time) ([]DemandTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, f := range r.s.data.Forecasts {
		if f.LocationID != locationID {
			continue
		}
		if f.BucketStart.Before(start) || f.BucketEnd.After(end) {
			continue
		}
		if _, seen := sums[f.MenuItemID]; !seen {
			order = append(order, f.MenuItemID)
		}
		sums[f.MenuItemID] += f.ExpectedQty
	}
	totals := make([]DemandTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, DemandTotal{MenuItemID: id, ExpectedQty: sums[id]})
	}
	return totals, nil
}

type memRecipes struct{ s *MemoryStore }

func (r memRecipes) IngredientStock(locationID, menuItemID string) ([]IngredientStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]IngredientStock, 0)
	for _, line := range r.s.data.RecipeLines {
		if line.MenuItemID != menuItemID {
			continue
		}
		row := IngredientStock{IngredientID: line.IngredientID, Qty: line.Qty, Unit: line.Unit}
		for _, level := range r.s.data.Inventory {
			if level.LocationID == locationID && level.IngredientID == line.IngredientID {
				row.OnHand = level.OnHand
				row.Unit = level.Unit
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type memPlans struct{ s *MemoryStore }

func (r memPlans) FindByKey(locationID string, planFor time.Time) (*models.PrepPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, plan := range r.s.data.Plans {
		if plan.LocationID == locationID && plan.PlanFor.Equal(planFor) {
			found := plan
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r memPlans) Create(plan *models.PrepPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	r.s.data.Plans = append(r.s.data.Plans, *plan)
	return nil
}

func (r memPlans) DeleteLines(planID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.data.PlanLines[:0:0]
	for _, line := range r.s.data.PlanLines {
		if line.PlanID != planID {
			kept = append(kept, line)
		}
	}
	r.s.data.PlanLines = kept
	return nil
}

func (r memPlans) UpsertLine(line *models.PrepPlanLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.data.PlanLines {
		if existing.PlanID == line.PlanID && existing.MenuItemID == line.MenuItemID {
			line.ID = existing.ID
			r.s.data.PlanLines[i] = *line
			return nil
		}
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	r.s.data.PlanLines = append(r.s.data.PlanLines, *line)
	return nil
}

func (r memPlans) Get(planID string) (*PlanHeader, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, plan := range r.s.data.Plans {
		if plan.ID == planID {
			header := PlanHeader{PrepPlan: plan}
			for _, location := range r.s.data.Locations {
				if location.ID == plan.LocationID {
					header.LocationName = location.Name
					break
				}
			}
			return &header, nil
		}
	}
	return nil, ErrNotFound
}

func (r memPlans) Lines(planID string) ([]PlanLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	names := make(map[string]string)
	for _, item := range r.s.data.MenuItems {
		names[item.ID] = item.Name
	}
	lines := make([]PlanLine, 0)
	for _, line := range r.s.data.PlanLines {
		if line.PlanID == planID {
			lines = append(lines, PlanLine{PrepPlanLine: line, MenuItemName: names[line.MenuItemID]})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuItemName < lines[j].MenuItemName })
	return lines, nil
}

type memTickets struct{ s *MemoryStore }

func (r memTickets) Queue(stationID string, limit int) ([]models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tickets := make([]models.Ticket, 0)
	for _, t := range r.s.data.Tickets {
		if t.StationID == stationID && t.Status == string(models.TicketStatusQueued) {
			tickets = append(tickets, t)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := tickets[i], tickets[j]
		switch {
		case a.PriorityScore != nil && b.PriorityScore == nil:
			return true
		case a.PriorityScore == nil && b.PriorityScore != nil:
			return false
		case a.PriorityScore != nil && b.PriorityScore != nil && *a.PriorityScore != *b.PriorityScore:
			return *a.PriorityScore > *b.PriorityScore
		default:
			return a.EnqueuedAt.Before(b.EnqueuedAt)
		}
	})
	if limit > 0 && len(tickets) > limit {
		tickets = tickets[:limit]
	}
	return tickets, nil
}

func (r memTickets) transition(id string, mutate func(*models.Ticket)) (*models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.Tickets {
		t := &r.s.data.Tickets[i]
		if t.ID != id || t.Status == string(models.TicketStatusPassed) {
			continue
		}
		mutate(t)
		updated := *t
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r memTickets) MarkFiring(id string, now time.Time) (*models.Ticket, error) {
	return r.transition(id, func(t *models.Ticket) {
		t.Status = string(models.TicketStatusFiring)
		if t.StartedAt == nil {
			started := now
			t.StartedAt = &started
		}
	})
}

func (r memTickets) Requeue(id string, enqueuedAt time.Time, decay float64) (*models.Ticket, error) {
	return r.transition(id, func(t *models.Ticket) {
		t.Status = string(models.TicketStatusQueued)
		t.EnqueuedAt = enqueuedAt
		if t.PriorityScore != nil {
			decayed := *t.PriorityScore * decay
			t.PriorityScore = &decayed
		}
	})
}

func (r memTickets) MarkPassed(id string, now time.Time) (*models.Ticket, error) {
	return r.transition(id, func(t *models.Ticket) {
		t.Status = string(models.TicketStatusPassed)
		completed := now
		t.CompletedAt = &completed
	})
}

func (r memTickets) Context(id string) (*TicketContext, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.data.Tickets {
		if t.ID != id {
			continue
		}
		ctx := TicketContext{Ticket: t}
		for _, item := range r.s.data.OrderItems {
			if item.ID != t.OrderItemID {
				continue
			}
			ctx.MenuItemID = item.MenuItemID
			ctx.Qty = item.Qty
			for _, menuItem := range r.s.data.MenuItems {
				if menuItem.ID == item.MenuItemID {
					ctx.MenuItemName = menuItem.Name
					break
				}
			}
			for _, order := range r.s.data.Orders {
				if order.ID == item.OrderID {
					ctx.TableNumber = order.TableNumber
					ctx.PlacedAt = order.PlacedAt
					break
				}
			}
			break
		}
		return &ctx, nil
	}
	return nil, ErrNotFound
}

func (r memTickets) OpenBreaches(locationID string, now time.Time) ([]Breach, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stations := make(map[string]models.Station)
	for _, station := range r.s.data.Stations {
		if station.LocationID == locationID {
			stations[station.ID] = station
		}
	}
	breaches := make([]Breach, 0)
	for _, t := range r.s.data.Tickets {
		station, ok := stations[t.StationID]
		if !ok || !t.Open() {
			continue
		}
		elapsed := now.Sub(t.EnqueuedAt).Minutes()
		if t.SLAMinutes <= 0 || elapsed <= t.SLAMinutes {
			continue
		}
		breaches = append(breaches, Breach{
			TicketID:       t.ID,
			StationID:      t.StationID,
			StationName:    station.Name,
			MinutesElapsed: elapsed,
			SLAMinutes:     t.SLAMinutes,
		})
	}
	sort.Slice(breaches, func(i, j int) bool {
		return breaches[i].MinutesElapsed > breaches[j].MinutesElapsed
	})
	return breaches, nil
}

type memAlerts struct{ s *MemoryStore }

func (r memAlerts) Acknowledge(id string, now time.Time) (*models.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.Alerts {
		a := &r.s.data.Alerts[i]
		if a.ID != id {
			continue
		}
		if a.AcknowledgedAt == nil {
			acked := now
			a.AcknowledgedAt = &acked
		}
		updated := *a
		return &updated, nil
	}
	return nil, ErrNotFound
}

type memRestocks struct{ s *MemoryStore }

func (r memRestocks) ForLocation(locationID string) ([]RestockRisk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ingredients := make(map[string]string)
	for _, ing := range r.s.data.Ingredients {
		ingredients[ing.ID] = ing.Name
	}
	suppliers := make(map[string]string)
	for _, sup := range r.s.data.Suppliers {
		suppliers[sup.ID] = sup.Name
	}
	risks := make([]RestockRisk, 0)
	for _, rec := range r.s.data.Restocks {
		if rec.LocationID != locationID {
			continue
		}
		risk := RestockRisk{
			RestockRecommendation: rec,
			IngredientName:        ingredients[rec.IngredientID],
		}
		if rec.SupplierID != nil {
			risk.SupplierName = suppliers[*rec.SupplierID]
		}
		risks = append(risks, risk)
	}
	sort.Slice(risks, func(i, j int) bool {
		return risks[i].CreatedAt.After(risks[j].CreatedAt)
	})
	return risks, nil
}

func (r memRestocks) ForSupplier(locationID, supplierID string) ([]RestockLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ingredients := make(map[string]string)
	for _, ing := range r.s.data.Ingredients {
		ingredients[ing.ID] = ing.Name
	}
	prices := make(map[string]float64)
	for _, price := range r.s.data.SupplierPrices {
		if price.SupplierID == supplierID {
			prices[price.IngredientID] = price.PricePerPack
		}
	}
	lines := make([]RestockLine, 0)
	for _, rec := range r.s.data.Restocks {
		if rec.LocationID != locationID {
			continue
		}
		if rec.SupplierID != nil && *rec.SupplierID != supplierID {
			continue
		}
		lines = append(lines, RestockLine{
			IngredientID:   rec.IngredientID,
			IngredientName: ingredients[rec.IngredientID],
			QtyPacks:       rec.RecommendedQtyPacks,
			PricePerPack:   prices[rec.IngredientID],
		})
	}
	return lines, nil
}

type memPurchaseOrders struct{ s *MemoryStore }

func (r memPurchaseOrders) Create(po *models.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var location *models.Location
	for i := range r.s.data.Locations {
		if r.s.data.Locations[i].ID == po.LocationID {
			location = &r.s.data.Locations[i]
			break
		}
	}
	if location == nil {
		return ErrNotFound
	}
	po.OrgID = location.OrgID
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	r.s.data.PurchaseOrders = append(r.s.data.PurchaseOrders, *po)
	return nil
}

func (r memPurchaseOrders) UpsertLine(line *models.PurchaseOrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.data.PurchaseOrderLines {
		if existing.POID == line.POID && existing.IngredientID == line.IngredientID {
			line.ID = existing.ID
			r.s.data.PurchaseOrderLines[i] = *line
			return nil
		}
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	r.s.data.PurchaseOrderLines = append(r.s.data.PurchaseOrderLines, *line)
	return nil
}

type memIngredients struct{ s *MemoryStore }

func (r memIngredients) Get(id string) (*models.Ingredient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, ingredient := range r.s.data.Ingredients {
		if ingredient.ID == id {
			found := ingredient
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r memIngredients) Substitutes(unit, excludeID string, limit int) ([]SubstituteCandidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	onHand := make(map[string]*float64)
	for _, level := range r.s.data.Inventory {
		qty := level.OnHand
		onHand[level.IngredientID] = &qty
	}
	candidates := make([]SubstituteCandidate, 0)
	for _, ingredient := range r.s.data.Ingredients {
		if ingredient.Unit != unit || ingredient.ID == excludeID {
			continue
		}
		candidates = append(candidates, SubstituteCandidate{
			IngredientID: ingredient.ID,
			Name:         ingredient.Name,
			OnHand:       onHand[ingredient.ID],
			Unit:         ingredient.Unit,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch {
		case a.OnHand != nil && b.OnHand == nil:
			return true
		case a.OnHand == nil:
			return false
		default:
			return *a.OnHand > *b.OnHand
		}
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

type memWaste struct{ s *MemoryStore }

func (r memWaste) Append(event *models.WasteEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	r.s.data.Waste = append(r.s.data.Waste, *event)
	return nil
}
