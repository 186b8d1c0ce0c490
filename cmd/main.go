package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"restaurant-service/internal/config"
	"restaurant-service/internal/database"
	"restaurant-service/internal/directory"
	"restaurant-service/internal/logger"
	"restaurant-service/internal/messaging"
	"restaurant-service/internal/services/basket"
	"restaurant-service/internal/services/catalog"
	"restaurant-service/internal/services/search"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	// A local .env is optional
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("restaurant-service")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting restaurant service", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", "Restaurant service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	dir := directory.New(cfg.Directory.URL, log)

	// Initialize services and handlers
	catalogService := catalog.NewService(catalog.NewRepository(db), publisher, log, cfg.Ordering.StrictBounds)
	basketService := basket.NewService(basket.NewRepository(db), dir, log)
	searchService := search.NewService(dir, catalogService, log)

	mux := http.NewServeMux()
	catalog.NewHandler(catalogService, log).Register(mux)
	basket.NewHandler(basketService, log).Register(mux)
	search.NewHandler(searchService, log).Register(mux)
	mux.HandleFunc("GET /health", healthHandler(db))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("server_started", fmt.Sprintf("Restaurant service listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := db.Ping(ctx) == nil

		response := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "restaurant-service",
			"healthy":   healthy,
		}

		w.Header().Set("Content-Type", "application/json")
		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			response["status"] = "unhealthy"
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		json.NewEncoder(w).Encode(response)
	}
}
