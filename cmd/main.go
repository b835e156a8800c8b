package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitchenops/internal/api"
	"kitchenops/internal/config"
	"kitchenops/internal/database"
	"kitchenops/internal/kitchen"
	"kitchenops/internal/monitoring"
	"kitchenops/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	demo        = flag.Bool("demo", false, "Force the in-memory demo dataset")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	// Initialize storage
	st, err := initializeStore(cfg, *demo)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer database.CloseDB()

	// Initialize decision layer and HTTP surface
	service := kitchen.NewService(st, cfg.Kitchen())
	monitor := monitoring.NewMonitor()
	server := api.NewServer(service, monitor, cfg.Auth.JWTSecret)

	// Start metrics server
	go startMetricsServer(cfg.Server.MetricsPort, monitor)

	// Start API server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// initializeStore selects the backing store: a configured database driver
// yields the GORM store, otherwise the in-memory store seeded with the demo
// dataset.
func initializeStore(cfg *config.Config, forceDemo bool) (store.Store, error) {
	if forceDemo || cfg.Database.Driver == "" {
		log.Println("No database configured, using in-memory demo dataset")
		return store.NewMemoryStore(store.DemoDataset()), nil
	}
	if err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return nil, err
	}
	db := database.GetDB()
	if cfg.Database.Driver == "sqlite3" {
		if err := database.Seed(db, store.DemoDataset()); err != nil {
			return nil, err
		}
	}
	return store.NewGormStore(db), nil
}

func startMetricsServer(port int, monitor *monitoring.Monitor) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		monitor.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
