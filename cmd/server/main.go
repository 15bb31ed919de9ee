package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/api"
	"github.com/Vibush01/EasyFitTrack/internal/config"
	"github.com/Vibush01/EasyFitTrack/internal/realtime"
	"github.com/Vibush01/EasyFitTrack/internal/repository/mongo"
	"github.com/Vibush01/EasyFitTrack/internal/service"

	"github.com/gin-gonic/gin"
)

// @title EasyFitTrack API
// @version 1.0
// @description Multi-tenant gym management: memberships, schedules, plans, and announcements.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting EasyFitTrack server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMembershipRequestIndexes(ctx, appDB.Collection("membership_requests"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("schedules"))
		mongo.EnsurePlanRequestIndexes(ctx, appDB.Collection("plan_requests"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"), appDB.Collection("diet_plans"))
		mongo.EnsureAnnouncementIndexes(ctx, appDB.Collection("announcements"))
		mongo.EnsureMacroLogIndexes(ctx, appDB.Collection("macro_logs"))
		mongo.EnsureEventLogIndexes(ctx, appDB.Collection("event_logs"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	membershipRequestRepo := mongo.NewMongoMembershipRequestRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	planRequestRepo := mongo.NewMongoPlanRequestRepository(appDB)
	workoutPlanRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	dietPlanRepo := mongo.NewMongoDietPlanRepository(appDB)
	announcementRepo := mongo.NewMongoAnnouncementRepository(appDB)
	macroLogRepo := mongo.NewMongoMacroLogRepository(appDB)
	eventLogRepo := mongo.NewMongoEventLogRepository(appDB)

	// --- Realtime Hub ---
	hub := realtime.NewHub()
	defer hub.Close()

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	membershipService := service.NewMembershipService(userRepo, membershipRequestRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)
	planService := service.NewPlanService(userRepo, planRequestRepo, workoutPlanRepo, dietPlanRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, hub)
	gymService := service.NewGymService(userRepo, membershipRequestRepo, announcementRepo)
	macroService := service.NewMacroService(macroLogRepo)
	analyticsService := service.NewAnalyticsService(eventLogRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		hub,
		userRepo,
		authService,
		membershipService,
		scheduleService,
		planService,
		announcementService,
		gymService,
		macroService,
		analyticsService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// Write timeout stays generous; websocket connections on /ws are
		// long-lived.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
