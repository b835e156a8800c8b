package models

import "time"

// PrepPlan represents a persisted prep recommendation for one location and
// planning window. Unique per (location, plan_for); regenerating for the same
// key replaces the existing lines instead of duplicating the plan.
type PrepPlan struct {
	ID           string    `gorm:"primary_key"`
	LocationID   string    `gorm:"unique_index:uq_prep_plan"`
	PlanFor      time.Time `gorm:"unique_index:uq_prep_plan"`
	GeneratedAt  time.Time
	ModelVersion string
	Note         string
}

// TableName sets the table name for PrepPlan
func (PrepPlan) TableName() string {
	return "prep_plans"
}

// PrepPlanLine represents one recommended prep quantity within a plan. A line
// exists only when the recommended quantity is positive; unique per
// (plan, menu item).
type PrepPlanLine struct {
	ID             string  `gorm:"primary_key"`
	PlanID         string  `gorm:"unique_index:uq_prep_plan_line"`
	MenuItemID     string  `gorm:"unique_index:uq_prep_plan_line"`
	RecommendedQty float64
	RationaleJSON  string `gorm:"column:rationale;type:text"`
}

// TableName sets the table name for PrepPlanLine
func (PrepPlanLine) TableName() string {
	return "prep_plan_lines"
}

// SetRationale serializes the structured explanation for storage.
func (l *PrepPlanLine) SetRationale(rationale JSONMap) error {
	data, err := EncodeJSON(rationale)
	if err != nil {
		return err
	}
	l.RationaleJSON = data
	return nil
}

// Rationale returns the decoded explanation, or the raw blob when it does not
// parse.
func (l *PrepPlanLine) Rationale() interface{} {
	return DecodeJSON(l.RationaleJSON)
}
