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

	"github.com/gin-gonic/gin"

	"thryveiq/coaching-app/internal/api"
	"thryveiq/coaching-app/internal/config"
	"thryveiq/coaching-app/internal/llm"
	"thryveiq/coaching-app/internal/repository/mongo"
	"thryveiq/coaching-app/internal/service"
	"thryveiq/coaching-app/internal/storage"
)

func main() {
	log.Println("Starting ThryveIQ Coaching Server...")

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
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("athlete_profiles"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureStravaIndexes(ctx, appDB.Collection("strava_connections"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	// Plan exports are optional; without a bucket the endpoint reports the
	// feature as unavailable.
	var exportStorage storage.ExportStorage
	if cfg.S3.BucketName != "" {
		log.Println("Initializing export storage service...")
		exportStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("No S3 bucket configured, plan exports disabled.")
	}

	// --- Initialize LLM Client ---
	var llmClient *llm.Client
	if cfg.Ollama.Host != "" {
		log.Printf("LLM enabled via Ollama at %s (model %s)", cfg.Ollama.Host, cfg.Ollama.Model)
		llmClient = llm.NewClient(cfg.Ollama.Host, cfg.Ollama.Model)
	} else {
		log.Println("No Ollama host configured, using rule engine and canned chat responses.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	stravaRepo := mongo.NewMongoStravaRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)

	// A nil interface stays nil only if we skip the assignment entirely.
	var planGenerator service.PlanGenerator
	var chatter service.Chatter
	if llmClient != nil {
		planGenerator = llmClient
		chatter = llmClient
	}
	planService := service.NewPlanService(profileRepo, planRepo, planGenerator, exportStorage)
	chatService := service.NewChatService(profileRepo, planRepo, chatter)
	stravaService := service.NewStravaService(stravaRepo, cfg.Strava.ClientID, cfg.Strava.ClientSecret)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService, chatService, stravaService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// LLM-backed endpoints can take minutes on slow hardware.
		WriteTimeout: 5 * time.Minute,
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
