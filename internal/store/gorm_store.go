package store

import (
	"sort"
	"time"

	"kitchenops/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// GormStore implements Store on top of a relational database through GORM.
// Works against SQLite and PostgreSQL; uniqueness of the natural keys is
// enforced by the unique indexes declared on the models.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by an open GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Forecasts() ForecastRepo           { return gormForecasts{s.db} }
func (s *GormStore) Recipes() RecipeRepo               { return gormRecipes{s.db} }
func (s *GormStore) Plans() PlanRepo                   { return gormPlans{s.db} }
func (s *GormStore) Tickets() TicketRepo               { return gormTickets{s.db} }
func (s *GormStore) Alerts() AlertRepo                 { return gormAlerts{s.db} }
func (s *GormStore) Restocks() RestockRepo             { return gormRestocks{s.db} }
func (s *GormStore) PurchaseOrders() PurchaseOrderRepo { return gormPurchaseOrders{s.db} }
func (s *GormStore) Ingredients() IngredientRepo       { return gormIngredients{s.db} }
func (s *GormStore) Waste() WasteRepo                  { return gormWaste{s.db} }

// Transaction runs fn inside one database transaction. Any error or panic
// rolls back; nothing partial becomes visible to other connections.
func (s *GormStore) Transaction(fn func(Store) error) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := fn(&GormStore{db: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func translateError(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}

type gormForecasts struct{ db *gorm.DB }

func (r gormForecasts) TotalsInWindow(locationID string, start, end time.Time) ([]DemandTotal, error) {
	var totals []DemandTotal
	err := r.db.Table("demand_forecasts").
		Select("menu_item_id, SUM(expected_qty) AS expected_qty").
		Where("location_id = ? AND bucket_start >= ? AND bucket_end <= ?", locationID, start, end).
		Group("menu_item_id").
		Scan(&totals).Error
	return totals, err
}

type gormRecipes struct{ db *gorm.DB }

func (r gormRecipes) IngredientStock(locationID, menuItemID string) ([]IngredientStock, error) {
	var rows []IngredientStock
	err := r.db.Raw(`
		SELECT r.ingredient_id,
		       r.qty,
		       COALESCE(i.on_hand, 0) AS on_hand,
		       COALESCE(i.unit, r.unit) AS unit
		FROM recipes r
		LEFT JOIN inventory_levels i
			ON i.ingredient_id = r.ingredient_id AND i.location_id = ?
		WHERE r.menu_item_id = ?`,
		locationID, menuItemID).Scan(&rows).Error
	return rows, err
}

type gormPlans struct{ db *gorm.DB }

func (r gormPlans) FindByKey(locationID string, planFor time.Time) (*models.PrepPlan, error) {
	var plan models.PrepPlan
	err := r.db.Where("location_id = ? AND plan_for = ?", locationID, planFor).First(&plan).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

func (r gormPlans) Create(plan *models.PrepPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	return r.db.Create(plan).Error
}

func (r gormPlans) DeleteLines(planID string) error {
	return r.db.Where("plan_id = ?", planID).Delete(&models.PrepPlanLine{}).Error
}

func (r gormPlans) UpsertLine(line *models.PrepPlanLine) error {
	res := r.db.Model(&models.PrepPlanLine{}).
		Where("plan_id = ? AND menu_item_id = ?", line.PlanID, line.MenuItemID).
		Updates(map[string]interface{}{
			"recommended_qty": line.RecommendedQty,
			"rationale":       line.RationaleJSON,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	return r.db.Create(line).Error
}

func (r gormPlans) Get(planID string) (*PlanHeader, error) {
	var plan models.PrepPlan
	if err := r.db.Where("id = ?", planID).First(&plan).Error; err != nil {
		return nil, translateError(err)
	}
	header := PlanHeader{PrepPlan: plan}
	var location models.Location
	if err := r.db.Where("id = ?", plan.LocationID).First(&location).Error; err == nil {
		header.LocationName = location.Name
	} else if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}
	return &header, nil
}

func (r gormPlans) Lines(planID string) ([]PlanLine, error) {
	var stored []models.PrepPlanLine
	if err := r.db.Where("plan_id = ?", planID).Find(&stored).Error; err != nil {
		return nil, err
	}
	names, err := menuItemNames(r.db, stored)
	if err != nil {
		return nil, err
	}
	lines := make([]PlanLine, 0, len(stored))
	for _, line := range stored {
		lines = append(lines, PlanLine{PrepPlanLine: line, MenuItemName: names[line.MenuItemID]})
	}
	// Stable listing for summaries, matching the menu-item ordering of reads.
	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuItemName < lines[j].MenuItemName })
	return lines, nil
}

func menuItemNames(db *gorm.DB, lines []models.PrepPlanLine) (map[string]string, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var items []models.MenuItem
	if err := db.Where("id IN (?)", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}

type gormTickets struct{ db *gorm.DB }

func (r gormTickets) Queue(stationID string, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("station_id = ? AND status = ?", stationID, string(models.TicketStatusQueued)).
		Order("priority_score IS NULL, priority_score DESC, enqueued_at ASC").
		Limit(limit).
		Find(&tickets).Error
	return tickets, err
}

func (r gormTickets) MarkFiring(id string, now time.Time) (*models.Ticket, error) {
	res := r.db.Model(&models.Ticket{}).
		Where("id = ? AND status <> ?", id, string(models.TicketStatusPassed)).
		Updates(map[string]interface{}{
			"status":     string(models.TicketStatusFiring),
			"started_at": gorm.Expr("COALESCE(started_at, ?)", now),
		})
	return r.afterTransition(id, res)
}

func (r gormTickets) Requeue(id string, enqueuedAt time.Time, decay float64) (*models.Ticket, error) {
	res := r.db.Model(&models.Ticket{}).
		Where("id = ? AND status <> ?", id, string(models.TicketStatusPassed)).
		Updates(map[string]interface{}{
			"status":         string(models.TicketStatusQueued),
			"enqueued_at":    enqueuedAt,
			"priority_score": gorm.Expr("priority_score * ?", decay),
		})
	return r.afterTransition(id, res)
}

func (r gormTickets) MarkPassed(id string, now time.Time) (*models.Ticket, error) {
	res := r.db.Model(&models.Ticket{}).
		Where("id = ? AND status <> ?", id, string(models.TicketStatusPassed)).
		Updates(map[string]interface{}{
			"status":       string(models.TicketStatusPassed),
			"completed_at": now,
		})
	return r.afterTransition(id, res)
}

func (r gormTickets) afterTransition(id string, res *gorm.DB) (*models.Ticket, error) {
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var ticket models.Ticket
	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, translateError(err)
	}
	return &ticket, nil
}

func (r gormTickets) Context(id string) (*TicketContext, error) {
	var ticket models.Ticket
	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, translateError(err)
	}
	ctx := TicketContext{Ticket: ticket}
	var item models.OrderItem
	if err := r.db.Where("id = ?", ticket.OrderItemID).First(&item).Error; err == nil {
		ctx.MenuItemID = item.MenuItemID
		ctx.Qty = item.Qty
		var menuItem models.MenuItem
		if err := r.db.Where("id = ?", item.MenuItemID).First(&menuItem).Error; err == nil {
			ctx.MenuItemName = menuItem.Name
		}
		var order models.Order
		if err := r.db.Where("id = ?", item.OrderID).First(&order).Error; err == nil {
			ctx.TableNumber = order.TableNumber
			ctx.PlacedAt = order.PlacedAt
		}
	} else if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}
	return &ctx, nil
}

func (r gormTickets) OpenBreaches(locationID string, now time.Time) ([]Breach, error) {
	type openTicket struct {
		ID          string
		StationID   string
		StationName string
		SLAMinutes  float64 `gorm:"column:sla_minutes"`
		EnqueuedAt  time.Time
	}
	var rows []openTicket
	err := r.db.Raw(`
		SELECT t.id, t.station_id, s.name AS station_name, t.sla_minutes, t.enqueued_at
		FROM kds_tickets t
		JOIN stations s ON s.id = t.station_id
		WHERE s.location_id = ? AND t.status IN (?, ?)`,
		locationID, string(models.TicketStatusQueued), string(models.TicketStatusFiring)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	breaches := make([]Breach, 0)
	for _, row := range rows {
		elapsed := now.Sub(row.EnqueuedAt).Minutes()
		if row.SLAMinutes <= 0 || elapsed <= row.SLAMinutes {
			continue
		}
		breaches = append(breaches, Breach{
			TicketID:       row.ID,
			StationID:      row.StationID,
			StationName:    row.StationName,
			MinutesElapsed: elapsed,
			SLAMinutes:     row.SLAMinutes,
		})
	}
	sort.Slice(breaches, func(i, j int) bool {
		return breaches[i].MinutesElapsed > breaches[j].MinutesElapsed
	})
	return breaches, nil
}

type gormAlerts struct{ db *gorm.DB }

func (r gormAlerts) Acknowledge(id string, now time.Time) (*models.Alert, error) {
	res := r.db.Model(&models.Alert{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"acknowledged_at": gorm.Expr("COALESCE(acknowledged_at, ?)", now),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var alert models.Alert
	if err := r.db.Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, translateError(err)
	}
	return &alert, nil
}

type gormRestocks struct{ db *gorm.DB }

func (r gormRestocks) ForLocation(locationID string) ([]RestockRisk, error) {
	var recs []models.RestockRecommendation
	err := r.db.Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	risks := make([]RestockRisk, 0, len(recs))
	for _, rec := range recs {
		risk := RestockRisk{RestockRecommendation: rec}
		var ingredient models.Ingredient
		if err := r.db.Where("id = ?", rec.IngredientID).First(&ingredient).Error; err == nil {
			risk.IngredientName = ingredient.Name
		}
		if rec.SupplierID != nil {
			var supplier models.Supplier
			if err := r.db.Where("id = ?", *rec.SupplierID).First(&supplier).Error; err == nil {
				risk.SupplierName = supplier.Name
			}
		}
		risks = append(risks, risk)
	}
	return risks, nil
}

func (r gormRestocks) ForSupplier(locationID, supplierID string) ([]RestockLine, error) {
	var lines []RestockLine
	err := r.db.Raw(`
		SELECT rr.ingredient_id,
		       ing.name AS ingredient_name,
		       rr.recommended_qty_packs AS qty_packs,
		       COALESCE(isp.price_per_pack, 0) AS price_per_pack
		FROM restock_recommendations rr
		JOIN ingredients ing ON ing.id = rr.ingredient_id
		LEFT JOIN ingredient_suppliers isp
			ON isp.ingredient_id = rr.ingredient_id AND isp.supplier_id = ?
		WHERE rr.location_id = ? AND (rr.supplier_id = ? OR rr.supplier_id IS NULL)`,
		supplierID, locationID, supplierID).Scan(&lines).Error
	return lines, err
}

type gormPurchaseOrders struct{ db *gorm.DB }

func (r gormPurchaseOrders) Create(po *models.PurchaseOrder) error {
	var location models.Location
	if err := r.db.Where("id = ?", po.LocationID).First(&location).Error; err != nil {
		return translateError(err)
	}
	po.OrgID = location.OrgID
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	return r.db.Create(po).Error
}

func (r gormPurchaseOrders) UpsertLine(line *models.PurchaseOrderLine) error {
	res := r.db.Model(&models.PurchaseOrderLine{}).
		Where("po_id = ? AND ingredient_id = ?", line.POID, line.IngredientID).
		Updates(map[string]interface{}{
			"qty_packs":      line.QtyPacks,
			"price_per_pack": line.PricePerPack,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	return r.db.Create(line).Error
}

type gormIngredients struct{ db *gorm.DB }

func (r gormIngredients) Get(id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

func (r gormIngredients) Substitutes(unit, excludeID string, limit int) ([]SubstituteCandidate, error) {
	type candidateRow struct {
		ID     string
		Name   string
		OnHand *float64 `gorm:"column:on_hand"`
		Unit   string
	}
	var rows []candidateRow
	err := r.db.Raw(`
		SELECT ing.id, ing.name, inv.on_hand, ing.unit
		FROM ingredients ing
		LEFT JOIN inventory_levels inv ON inv.ingredient_id = ing.id
		WHERE ing.unit = ? AND ing.id <> ?
		ORDER BY inv.on_hand IS NULL, inv.on_hand DESC
		LIMIT ?`,
		unit, excludeID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	candidates := make([]SubstituteCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, SubstituteCandidate{
			IngredientID: row.ID,
			Name:         row.Name,
			OnHand:       row.OnHand,
			Unit:         row.Unit,
		})
	}
	return candidates, nil
}

type gormWaste struct{ db *gorm.DB }

func (r gormWaste) Append(event *models.WasteEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	return r.db.Create(event).Error
}
