package kitchen

import (
	"errors"
	"log"
	"time"

	"kitchenops/internal/models"
	"kitchenops/internal/store"
)

// SLAWatchdog classifies wait-time SLA breaches and manages their alerts.
// Classification is a pure step function of the elapsed/target ratio; each
// breach is judged independently of the others.
type SLAWatchdog struct {
	store store.Store
	cfg   Config
	now   func() time.Time
}

// NewSLAWatchdog creates a watchdog over the given store.
func NewSLAWatchdog(st store.Store, cfg Config) *SLAWatchdog {
	return &SLAWatchdog{store: st, cfg: cfg, now: time.Now}
}

// Classify maps an elapsed/target ratio to a severity tier. No severity is
// assigned when the SLA target is zero: the ratio is undefined.
func (w *SLAWatchdog) Classify(elapsedMinutes, slaMinutes float64) (models.Severity, bool) {
	if slaMinutes == 0 {
		return "", false
	}
	ratio := elapsedMinutes / slaMinutes
	switch {
	case ratio >= w.cfg.CriticalRatio:
		return models.SeverityCritical, true
	case ratio >= w.cfg.WarningRatio:
		return models.SeverityWarning, true
	default:
		return models.SeverityInfo, true
	}
}

// ListBreaches returns the location's open SLA breaches, most overdue first,
// each classified by its elapsed/target ratio.
func (w *SLAWatchdog) ListBreaches(locationID string) (Result, error) {
	log.Printf("Listing open SLA breaches | location_id=%s", locationID)
	breaches, err := w.store.Tickets().OpenBreaches(locationID, w.now().UTC())
	if err != nil {
		return Result{}, err
	}
	payload := make([]map[string]interface{}, 0, len(breaches))
	for _, breach := range breaches {
		entry := map[string]interface{}{
			"ticket_id":       breach.TicketID,
			"station_id":      breach.StationID,
			"station_name":    breach.StationName,
			"minutes_elapsed": breach.MinutesElapsed,
			"sla_minutes":     breach.SLAMinutes,
		}
		if breach.SLAMinutes != 0 {
			entry["sla_ratio"] = breach.MinutesElapsed / breach.SLAMinutes
		}
		if severity, ok := w.Classify(breach.MinutesElapsed, breach.SLAMinutes); ok {
			entry["severity"] = string(severity)
		}
		payload = append(payload, entry)
	}
	return Success(map[string]interface{}{"breaches": payload}), nil
}

// Acknowledge marks an alert as seen, stopping repeated notifications. The
// transition is one-way: an already-acknowledged alert keeps its original
// timestamp.
func (w *SLAWatchdog) Acknowledge(alertID string) (Result, error) {
	log.Printf("Acknowledging alert | alert_id=%s", alertID)
	alert, err := w.store.Alerts().Acknowledge(alertID, w.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Alert %s not found", alertID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Alert acknowledged", map[string]interface{}{
		"id":              alert.ID,
		"message":         alert.Message,
		"kind":            alert.Kind,
		"severity":        alert.Severity,
		"acknowledged_at": formatTimePtr(alert.AcknowledgedAt),
	}), nil
}

// Notify records a notification for downstream systems to consume.
func (w *SLAWatchdog) Notify(channel, message string) (Result, error) {
	log.Printf("Notification dispatched | channel=%s message=%s", channel, message)
	return TextSuccess("Notification recorded", map[string]interface{}{
		"channel": channel,
		"message": message,
	}), nil
}
