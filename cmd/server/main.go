package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "rentdesk-backend/internal/api/http"
	"rentdesk-backend/internal/api/http/middleware"
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository/postgres"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rentdesk backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := middleware.NewAuthMiddleware(tokenManager)

	// Initialize Services
	authService := service.NewAuthService(store, tokenManager)
	rentalService := service.NewRentalService(store)
	paymentService := service.NewPaymentService(store)
	customerService := service.NewCustomerService(store)
	productService := service.NewProductService(store)
	inventoryService := service.NewInventoryService(store)
	carService := service.NewCarService(store)
	expenseService := service.NewExpenseService(store)
	calendarNoteService := service.NewCalendarNoteService(store)
	statisticsService := service.NewStatisticsService(store)

	// Initialize HTTP API
	handlers := httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authService),
		Rentals:       httpapi.NewRentalHandler(rentalService, paymentService),
		Customers:     httpapi.NewCustomerHandler(customerService),
		Products:      httpapi.NewProductHandler(productService, inventoryService),
		Cars:          httpapi.NewCarHandler(carService),
		Payments:      httpapi.NewPaymentHandler(paymentService),
		Expenses:      httpapi.NewExpenseHandler(expenseService),
		CalendarNotes: httpapi.NewCalendarNoteHandler(calendarNoteService),
		Statistics:    httpapi.NewStatisticsHandler(statisticsService),
		Health:        httpapi.NewHealthHandler(db),
	}
	router := httpapi.NewRouter(handlers, authMiddleware)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), corsHandler); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
