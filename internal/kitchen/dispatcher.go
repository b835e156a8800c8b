package kitchen

import (
	"errors"
	"log"
	"time"

	"kitchenops/internal/store"
)

// StationDispatcher ranks a station's pending tickets and drives the ticket
// lifecycle: queued -> firing -> passed, with holds re-queueing at a decayed
// priority. Every transition is a conditional single-row update; passed is
// terminal.
type StationDispatcher struct {
	store store.Store
	cfg   Config
	now   func() time.Time
}

// NewStationDispatcher creates a dispatcher over the given store.
func NewStationDispatcher(st store.Store, cfg Config) *StationDispatcher {
	return &StationDispatcher{store: st, cfg: cfg, now: time.Now}
}

// Queue returns the station's pending tickets ordered by priority score
// descending with unscored tickets last, ties broken by enqueue time. The
// read is pure: restartable, no cursor state, no side effects.
func (d *StationDispatcher) Queue(stationID string, limit int) (Result, error) {
	if limit <= 0 {
		limit = d.cfg.DefaultQueueLimit
	}
	log.Printf("Fetching station queue | station_id=%s limit=%d", stationID, limit)
	tickets, err := d.store.Tickets().Queue(stationID, limit)
	if err != nil {
		return Result{}, err
	}
	payload := make([]map[string]interface{}, 0, len(tickets))
	for _, t := range tickets {
		payload = append(payload, map[string]interface{}{
			"ticket_id":       t.ID,
			"status":          t.Status,
			"priority_score":  t.PriorityScore,
			"priority_reason": t.PriorityReason(),
			"enqueued_at":     t.EnqueuedAt.Format(time.RFC3339),
		})
	}
	return Success(map[string]interface{}{"tickets": payload}), nil
}

// Start marks a ticket as actively firing. The start clock is set once:
// repeated calls never reset started_at.
func (d *StationDispatcher) Start(ticketID string) (Result, error) {
	log.Printf("Starting ticket | ticket_id=%s", ticketID)
	ticket, err := d.store.Tickets().MarkFiring(ticketID, d.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Ticket %s not found", ticketID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Ticket moved to firing", map[string]interface{}{
		"id":         ticket.ID,
		"status":     ticket.Status,
		"started_at": formatTimePtr(ticket.StartedAt),
	}), nil
}

// Hold delays a ticket: it re-queues with its enqueue time advanced by the
// requested minutes and a present priority score multiplied by the decay
// factor. This models "deprioritize, revisit later".
func (d *StationDispatcher) Hold(ticketID string, minutes int) (Result, error) {
	if minutes <= 0 {
		minutes = d.cfg.DefaultHoldMinutes
	}
	log.Printf("Holding ticket | ticket_id=%s minutes=%d", ticketID, minutes)
	enqueuedAt := d.now().UTC().Add(time.Duration(minutes) * time.Minute)
	ticket, err := d.store.Tickets().Requeue(ticketID, enqueuedAt, d.cfg.HoldDecayFactor)
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Ticket %s not found", ticketID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Ticket held", map[string]interface{}{
		"id":             ticket.ID,
		"status":         ticket.Status,
		"enqueued_at":    ticket.EnqueuedAt.Format(time.RFC3339),
		"priority_score": ticket.PriorityScore,
	}), nil
}

// Pass completes a ticket and moves it off the queue.
func (d *StationDispatcher) Pass(ticketID string) (Result, error) {
	log.Printf("Passing ticket | ticket_id=%s", ticketID)
	ticket, err := d.store.Tickets().MarkPassed(ticketID, d.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Ticket %s not found", ticketID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return TextSuccess("Ticket passed to next step", map[string]interface{}{
		"id":           ticket.ID,
		"status":       ticket.Status,
		"completed_at": formatTimePtr(ticket.CompletedAt),
	}), nil
}

// Explain returns the context behind a ticket's prioritisation: its score and
// reason plus the order and menu item it belongs to.
func (d *StationDispatcher) Explain(ticketID string) (Result, error) {
	log.Printf("Explaining ticket | ticket_id=%s", ticketID)
	ctx, err := d.store.Tickets().Context(ticketID)
	if errors.Is(err, store.ErrNotFound) {
		return Errorf("Ticket %s not found", ticketID), nil
	}
	if err != nil {
		return Result{}, err
	}
	return Success(map[string]interface{}{
		"id":              ctx.ID,
		"status":          ctx.Status,
		"priority_score":  ctx.PriorityScore,
		"priority_reason": ctx.PriorityReason(),
		"enqueued_at":     ctx.EnqueuedAt.Format(time.RFC3339),
		"menu_item_id":    ctx.MenuItemID,
		"menu_item_name":  ctx.MenuItemName,
		"qty":             ctx.Qty,
		"table_number":    ctx.TableNumber,
		"placed_at":       ctx.PlacedAt.Format(time.RFC3339),
	}), nil
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
