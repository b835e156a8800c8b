package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"kitchenops/internal/kitchen"

	"github.com/gin-gonic/gin"
)

// respond maps an operation outcome onto HTTP: result envelopes are returned
// with 200 whatever their status, a ValidationError is a 400, anything else
// is a 500. Every outcome is recorded against the monitor.
func (s *Server) respond(c *gin.Context, operation string, started time.Time, result kitchen.Result, err error) {
	var validation *kitchen.ValidationError
	switch {
	case errors.As(err, &validation):
		s.monitor.RecordOperation(operation, "validation_error", time.Since(started))
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case err != nil:
		s.monitor.RecordOperation(operation, "internal_error", time.Since(started))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		s.monitor.RecordOperation(operation, result.Status, time.Since(started))
		c.JSON(http.StatusOK, result)
	}
}

// Prep planning handlers

func (s *Server) GetAvailability(c *gin.Context) {
	started := time.Now()
	locationID := c.Query("location_id")
	menuItemID := c.Query("menu_item_id")
	if locationID == "" || menuItemID == "" {
		s.respond(c, "availability", started, kitchen.Result{},
			&kitchen.ValidationError{Message: "location_id and menu_item_id are required"})
		return
	}
	portions, err := s.service.Availability.AvailablePortions(locationID, menuItemID)
	if err != nil {
		s.respond(c, "availability", started, kitchen.Result{}, err)
		return
	}
	s.respond(c, "availability", started, kitchen.Success(gin.H{
		"location_id":        locationID,
		"menu_item_id":       menuItemID,
		"available_portions": portions,
	}), nil)
}

func (s *Server) GeneratePlan(c *gin.Context) {
	started := time.Now()
	var req struct {
		LocationID  string `json:"location_id" binding:"required"`
		WindowStart string `json:"window_start"`
		WindowEnd   string `json:"window_end"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	window, err := kitchen.ParseWindow(req.WindowStart, req.WindowEnd)
	if err != nil {
		s.respond(c, "plan_generate", started, kitchen.Result{}, err)
		return
	}
	result, err := s.service.Planner.Generate(req.LocationID, window)
	s.respond(c, "plan_generate", started, result, err)
}

func (s *Server) GetPlan(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Planner.Summarize(c.Param("id"))
	s.respond(c, "plan_summary", started, result, err)
}

func (s *Server) ExplainPlan(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Planner.Explain(c.Param("id"))
	s.respond(c, "plan_explain", started, result, err)
}

// Station dispatch handlers

func (s *Server) GetStationQueue(c *gin.Context) {
	started := time.Now()
	stationID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	result, err := s.service.Dispatcher.Queue(stationID, limit)
	if err == nil && !result.IsError() {
		s.recordQueueDepth(stationID, result)
	}
	s.respond(c, "station_queue", started, result, err)
}

func (s *Server) StartTicket(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Dispatcher.Start(c.Param("id"))
	s.respond(c, "ticket_start", started, result, err)
}

func (s *Server) HoldTicket(c *gin.Context) {
	started := time.Now()
	var req struct {
		Minutes int `json:"minutes"`
	}
	// An empty body means the default hold duration.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.service.Dispatcher.Hold(c.Param("id"), req.Minutes)
	s.respond(c, "ticket_hold", started, result, err)
}

func (s *Server) PassTicket(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Dispatcher.Pass(c.Param("id"))
	s.respond(c, "ticket_pass", started, result, err)
}

func (s *Server) ExplainTicket(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Dispatcher.Explain(c.Param("id"))
	s.respond(c, "ticket_explain", started, result, err)
}

// SLA watchdog handlers

func (s *Server) GetBreaches(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Watchdog.ListBreaches(c.Param("id"))
	if err == nil && !result.IsError() {
		s.recordBreachCount(result)
	}
	s.respond(c, "sla_breaches", started, result, err)
}

func (s *Server) AcknowledgeAlert(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Watchdog.Acknowledge(c.Param("id"))
	s.respond(c, "alert_ack", started, result, err)
}

func (s *Server) SendNotification(c *gin.Context) {
	started := time.Now()
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.service.Watchdog.Notify(req.Channel, req.Message)
	s.respond(c, "notify", started, result, err)
}

// Inventory handlers

func (s *Server) GetRestockRisks(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Inventory.ListRestockRisks(c.Param("id"))
	s.respond(c, "restock_risks", started, result, err)
}

func (s *Server) DraftPurchaseOrder(c *gin.Context) {
	started := time.Now()
	var req struct {
		LocationID string `json:"location_id" binding:"required"`
		SupplierID string `json:"supplier_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.service.Inventory.DraftPurchaseOrder(req.LocationID, req.SupplierID)
	s.respond(c, "po_draft", started, result, err)
}

func (s *Server) GetSubstitutes(c *gin.Context) {
	started := time.Now()
	result, err := s.service.Inventory.SuggestSubstitute(c.Param("id"))
	s.respond(c, "substitute", started, result, err)
}

func (s *Server) LogWaste(c *gin.Context) {
	started := time.Now()
	var req struct {
		LocationID   string  `json:"location_id" binding:"required"`
		MenuItemID   *string `json:"menu_item_id"`
		IngredientID *string `json:"ingredient_id"`
		Qty          float64 `json:"qty" binding:"required"`
		Reason       string  `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.service.Inventory.LogWaste(kitchen.WasteEntry{
		LocationID:   req.LocationID,
		MenuItemID:   req.MenuItemID,
		IngredientID: req.IngredientID,
		Qty:          req.Qty,
		Reason:       req.Reason,
	})
	s.respond(c, "waste_log", started, result, err)
}

// recordQueueDepth extracts the ticket count from a queue envelope for the
// station depth gauge.
func (s *Server) recordQueueDepth(stationID string, result kitchen.Result) {
	for _, item := range result.Content {
		payload, ok := item.JSON.(map[string]interface{})
		if !ok {
			continue
		}
		if tickets, ok := payload["tickets"].([]map[string]interface{}); ok {
			s.monitor.RecordQueueDepth(stationID, len(tickets))
			return
		}
	}
}

func (s *Server) recordBreachCount(result kitchen.Result) {
	for _, item := range result.Content {
		payload, ok := item.JSON.(map[string]interface{})
		if !ok {
			continue
		}
		if breaches, ok := payload["breaches"].([]map[string]interface{}); ok {
			s.monitor.RecordOpenBreaches(len(breaches))
			return
		}
	}
}
