// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/config"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/db"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/handler"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/repository"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/router"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/service"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo)
	transactionService := service.NewTransactionService(transactionRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	r := router.NewRouter(authHandler, transactionHandler)

	// Background sweep of expired refresh tokens, standing in for the
	// store-level TTL expiry of the registry.
	tokenCleanup := service.NewTokenCleanup(tokenRepo)
	if err := tokenCleanup.Start(); err != nil {
		logger.Log.Fatalf("Error starting token cleanup job: %v", err)
	}
	defer tokenCleanup.Stop()

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp bundles the wired layers over injected connections so integration
// tests can drive the real router without going through Run.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo)
	transactionService := service.NewTransactionService(transactionRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	return &TestApp{
		DB:     database,
		Router: router.NewRouter(authHandler, transactionHandler),
	}
}
