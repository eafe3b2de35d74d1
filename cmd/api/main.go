package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internmatch-backend/config"
	_ "internmatch-backend/docs" // Important for Swagger
	v1 "internmatch-backend/internal/delivery/http/v1"
	"internmatch-backend/internal/domain"
	"internmatch-backend/internal/ledger"
	"internmatch-backend/internal/recommend"
	"internmatch-backend/internal/repository/postgres"
	"internmatch-backend/internal/repository/redisstore"
	"internmatch-backend/internal/usecase"
	"internmatch-backend/pkg/auth"
	"internmatch-backend/pkg/database"
	"internmatch-backend/pkg/logger"
	"internmatch-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// @title           Internship Match API
// @version         1.0
// @description     Swipe-based internship discovery backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting internship match backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (seen-job ledger + rate limiting). Degrades to the
	// in-memory store when unavailable.
	var seenStore domain.SeenStore
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, seen-job ledger will not survive restarts", "error", err)
		seenStore = redisstore.NewMemSeenStore()
	} else {
		seenStore = redisstore.NewSeenStore(redis.Client())
		defer redis.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	newsRepo := postgres.NewNewsRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	seenLedger := ledger.New(seenStore)
	userUC := usecase.NewUserUsecase(userRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo, cfg.FeedPageSize)
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	feedUC := usecase.NewFeedUsecase(jobRepo, userRepo, savedJobUC, seenLedger, cfg.FeedPageSize)
	newsUC := usecase.NewNewsUsecase(newsRepo)
	ranker := recommend.NewRanker(jobRepo, userRepo, savedJobRepo, applicationRepo)

	// 7. Setup Auth Provider (JWKS)
	jwksURL := cfg.AuthIssuer + "/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 8. Daily digest scheduler
	digestUC := usecase.NewDigestUsecase(jobRepo, userRepo, usecase.LogNotifier{}, cfg.DigestMinScore)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DigestCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := digestUC.Run(ctx); err != nil {
			logger.Log.Error("Digest run failed", "error", err)
		}
	}); err != nil {
		logger.Log.Error("Invalid digest cron spec", "spec", cfg.DigestCronSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		FeedUC:        feedUC,
		SavedJobUC:    savedJobUC,
		ApplicationUC: applicationUC,
		UserUC:        userUC,
		NewsUC:        newsUC,
		Ranker:        ranker,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	cronCtx := scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Let an in-flight digest run finish before exiting
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	logger.Log.Info("Server exiting")
}
