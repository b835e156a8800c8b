package kitchen

import (
	"errors"
	"fmt"
	"log"
	"time"

	"kitchenops/internal/models"
	"kitchenops/internal/store"
)

// PrepPlanner generates and explains prep plans: how many portions of each
// menu item to prepare ahead of forecasted demand, given what inventory can
// already cover.
type PrepPlanner struct {
	store store.Store
	cfg   Config
	now   func() time.Time
}

// NewPrepPlanner creates a planner over the given store.
func NewPrepPlanner(st store.Store, cfg Config) *PrepPlanner {
	return &PrepPlanner{store: st, cfg: cfg, now: time.Now}
}

// Generate creates or refreshes the prep plan keyed by (location,
// window.start). Regeneration is a full rewrite: existing lines are deleted
// and recomputed from the latest forecast and inventory snapshot, all inside
// one transaction. A window whose end does not follow its start raises a
// ValidationError before anything is written.
func (p *PrepPlanner) Generate(locationID string, window Window) (Result, error) {
	log.Printf("Generating prep plan | location_id=%s start=%s end=%s",
		locationID, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	var planID string
	var lineCount int
	err := p.store.Transaction(func(tx store.Store) error {
		plan, err := tx.Plans().FindByKey(locationID, window.Start)
		switch {
		case err == nil:
			planID = plan.ID
			if err := tx.Plans().DeleteLines(planID); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			note, err := models.EncodeJSON(models.JSONMap{"window": window.Payload()})
			if err != nil {
				return err
			}
			created := &models.PrepPlan{
				LocationID:   locationID,
				PlanFor:      window.Start,
				GeneratedAt:  p.now().UTC(),
				ModelVersion: p.cfg.ModelVersion,
				Note:         note,
			}
			if err := tx.Plans().Create(created); err != nil {
				return err
			}
			planID = created.ID
		default:
			return err
		}

		totals, err := tx.Forecasts().TotalsInWindow(locationID, window.Start, window.End)
		if err != nil {
			return err
		}
		for _, total := range totals {
			if total.ExpectedQty <= 0 {
				continue
			}
			available, breakdown, err := availablePortions(tx, locationID, total.MenuItemID)
			if err != nil {
				return err
			}
			recommended := total.ExpectedQty - available
			if recommended <= 0 {
				continue
			}
			line := &models.PrepPlanLine{
				PlanID:         planID,
				MenuItemID:     total.MenuItemID,
				RecommendedQty: recommended,
			}
			if err := line.SetRationale(lineRationale(total.ExpectedQty, available, breakdown, window)); err != nil {
				return err
			}
			if err := tx.Plans().UpsertLine(line); err != nil {
				return err
			}
			lineCount++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Prep plan generated", map[string]interface{}{
		"plan_id": planID,
		"lines":   lineCount,
		"window":  window.Payload(),
	}), nil
}

func lineRationale(expected, available float64, breakdown []store.IngredientStock, window Window) models.JSONMap {
	ingredients := make([]interface{}, 0, len(breakdown))
	for _, row := range breakdown {
		ingredients = append(ingredients, map[string]interface{}{
			"ingredient_id": row.IngredientID,
			"qty":           row.Qty,
			"on_hand":       row.OnHand,
			"unit":          row.Unit,
		})
	}
	return models.JSONMap{
		"expected_qty":       expected,
		"available_portions": available,
		"ingredients":        ingredients,
		"window":             window.Payload(),
	}
}

// Summarize returns a stored plan's header and lines.
func (p *PrepPlanner) Summarize(planID string) (Result, error) {
	payload, res, err := p.summary(planID)
	if err != nil || res.IsError() {
		return res, err
	}
	return Success(payload), nil
}

// Explain returns the plan summary plus human-readable highlights describing
// the demand and coverage behind each line.
func (p *PrepPlanner) Explain(planID string) (Result, error) {
	payload, res, err := p.summary(planID)
	if err != nil || res.IsError() {
		return res, err
	}
	highlights := make([]string, 0)
	if lines, ok := payload["lines"].([]map[string]interface{}); ok {
		for _, line := range lines {
			highlights = append(highlights, lineHighlight(line))
		}
	}
	return Success(map[string]interface{}{
		"plan":       payload,
		"highlights": highlights,
	}), nil
}

func lineHighlight(line map[string]interface{}) string {
	name, _ := line["name"].(string)
	if name == "" {
		name, _ = line["menu_item_id"].(string)
	}
	var expected, available interface{}
	if rationale, ok := line["rationale"].(map[string]interface{}); ok {
		expected = rationale["expected_qty"]
		available = rationale["available_portions"]
	}
	return fmt.Sprintf("Prep %v of %s: forecast %v, on-hand covers %v.",
		line["recommended_qty"], name, expected, available)
}

func (p *PrepPlanner) summary(planID string) (map[string]interface{}, Result, error) {
	header, err := p.store.Plans().Get(planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, Errorf("Prep plan %s not found", planID), nil
	}
	if err != nil {
		return nil, Result{}, err
	}
	lines, err := p.store.Plans().Lines(planID)
	if err != nil {
		return nil, Result{}, err
	}
	linePayload := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		linePayload = append(linePayload, map[string]interface{}{
			"menu_item_id":    line.MenuItemID,
			"name":            line.MenuItemName,
			"recommended_qty": line.RecommendedQty,
			"rationale":       line.Rationale(),
		})
	}
	payload := map[string]interface{}{
		"id":            header.ID,
		"location_name": header.LocationName,
		"plan_for":      header.PlanFor.Format(time.RFC3339),
		"generated_at":  header.GeneratedAt.Format(time.RFC3339),
		"model_version": header.ModelVersion,
		"note":          models.DecodeJSON(header.Note),
		"lines":         linePayload,
	}
	return payload, Result{Status: StatusSuccess}, nil
}
