// Package api exposes the kitchen decision layer over HTTP.
package api

import (
	"net/http"
	"strings"

	"kitchenops/internal/kitchen"
	"kitchenops/internal/monitoring"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// Server represents the HTTP surface over the kitchen service.
type Server struct {
	Router    *gin.Engine
	service   *kitchen.Service
	monitor   *monitoring.Monitor
	jwtSecret string
}

// NewServer creates a server around the kitchen service. An empty jwtSecret
// disables authentication, which is the demo and test configuration.
func NewServer(service *kitchen.Service, monitor *monitoring.Monitor, jwtSecret string) *Server {
	router := gin.Default()

	s := &Server{
		Router:    router,
		service:   service,
		monitor:   monitor,
		jwtSecret: jwtSecret,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "kitchenops API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	if s.jwtSecret != "" {
		v1.Use(s.authMiddleware())
	}
	{
		// Prep planning
		v1.GET("/availability", s.GetAvailability)
		v1.POST("/plans", s.GeneratePlan)
		v1.GET("/plans/:id", s.GetPlan)
		v1.GET("/plans/:id/explain", s.ExplainPlan)

		// Station dispatch
		v1.GET("/stations/:id/queue", s.GetStationQueue)
		v1.POST("/tickets/:id/start", s.StartTicket)
		v1.POST("/tickets/:id/hold", s.HoldTicket)
		v1.POST("/tickets/:id/pass", s.PassTicket)
		v1.GET("/tickets/:id/explain", s.ExplainTicket)

		// SLA watching
		v1.GET("/locations/:id/breaches", s.GetBreaches)
		v1.POST("/alerts/:id/ack", s.AcknowledgeAlert)
		v1.POST("/notifications", s.SendNotification)

		// Inventory control
		v1.GET("/locations/:id/restock-risks", s.GetRestockRisks)
		v1.POST("/purchase-orders", s.DraftPurchaseOrder)
		v1.GET("/ingredients/:id/substitutes", s.GetSubstitutes)
		v1.POST("/waste", s.LogWaste)
	}

	// Live station queue stream
	s.Router.GET("/ws/stations/:id/queue", s.handleQueueStream)
}

// authMiddleware validates the bearer token on every request.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
