package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/metajournal/reward-engine/internal/config"
	"github.com/metajournal/reward-engine/internal/database"
	"github.com/metajournal/reward-engine/internal/handlers"
	"github.com/metajournal/reward-engine/internal/jobs"
	"github.com/metajournal/reward-engine/internal/repository"
	cronjobs "github.com/metajournal/reward-engine/internal/scheduler"
	"github.com/metajournal/reward-engine/internal/services"
	"github.com/metajournal/reward-engine/pkg/logger"
	"github.com/metajournal/reward-engine/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	progressRepo := repository.NewProgressRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- Services ---
	clock := services.SystemClock{}
	rng := services.NewRandomSource()
	policy := services.SchedulePolicy(cfg.SchedulePolicy)
	notificationService := services.NewNotificationService(notificationRepo, progressRepo, clock)
	rewardService := services.NewRewardService(progressRepo, policy, clock, rng, notificationService)

	// --- Handlers ---
	rewardHandler := handlers.NewRewardHandler(rewardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(progressRepo)

	// Daily reward-expiry scan
	expiryNotifier := jobs.NewExpiryNotifier(notificationService)
	cronjobs.StartRewardCronJobs(expiryNotifier)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Progress routes (all require authentication)
	progressRoutes := router.PathPrefix("/progress").Subrouter()
	progressRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	progressRoutes.HandleFunc("", rewardHandler.GetProgressHandler).Methods("GET")
	progressRoutes.HandleFunc("/actions", rewardHandler.RecordActionHandler).Methods("POST")
	progressRoutes.HandleFunc("/rewards", rewardHandler.GetRewardsHandler).Methods("GET")
	progressRoutes.HandleFunc("/rewards/acknowledge", rewardHandler.AcknowledgeRewardHandler).Methods("POST")
	progressRoutes.HandleFunc("/rewards/{id}", rewardHandler.RedeemRewardHandler).Methods("DELETE")

	// Notification routes
	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkReadHandler).Methods("POST")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/progress", adminHandler.GetAllProgressHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
