package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/analytics"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/repository/redis"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-engine/internal/transport/http"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-engine/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	algorithm, err := bot.ParseAlgorithm(cfg.SearchAlgorithm)
	if err != nil {
		log.Fatalf("Invalid SEARCH_ALGORITHM: %v", err)
	}
	defaults := bot.Config{Depth: cfg.SearchDepth, Algorithm: algorithm}

	// 1. Search-run store (optional)
	var recorder bot.RunRecorder
	var runStore transportHttp.RunStore
	if cfg.DatabaseURL != "" {
		db, err := postgres.OpenDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		runRepo := postgres.NewRunRepo(db)
		recorder = runRepo
		runStore = runRepo
	} else {
		log.Println("[DB] DATABASE_URL not set, search runs will not be stored")
	}

	// 2. Move cache (optional)
	if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var cache bot.MoveCache
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewMoveCache(redis.RedisClient, cfg.MoveCacheTTL)
	}

	// 3. Analytics (optional)
	var publisher bot.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[KAFKA] Publishing engine events to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	// 4. Services
	engine := bot.NewEngine(cache, recorder, publisher)
	gameService := game.NewService(engine, cfg.MaxSearchDepth)
	sessionManager := game.NewSessionManager(engine, publisher)

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 5. Handlers
	engineHandler := transportHttp.NewEngineHandler(gameService, defaults)
	gameHandler := transportHttp.NewGameHandler(sessionManager, engineHandler)
	runHandler := transportHttp.NewRunHandler(runStore)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	wsHandler := websocket.NewHandler(sessionManager, cfg.AllowedOrigins)

	// 6. Setup Gin Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": sessionManager.ActiveCount(),
			"cache":    cache != nil,
			"runStore": runStore != nil,
		})
	})

	// Stateless engine routes
	router.GET("/api/engine/algorithms", gameHandler.Algorithms)
	router.POST("/api/engine/move", engineHandler.ChooseMove)
	router.POST("/api/engine/compare", engineHandler.Compare)

	// Game session routes
	router.GET("/api/games", watchHandler.GetLiveGames)
	router.POST("/api/games", gameHandler.CreateGame)
	router.GET("/api/games/:id", gameHandler.GetGame)
	router.POST("/api/games/:id/move", gameHandler.PlayMove)
	router.DELETE("/api/games/:id", gameHandler.DeleteGame)

	// Search run records
	router.GET("/api/runs", runHandler.GetRecentRuns)
	router.GET("/api/runs/stats", runHandler.GetStats)

	// WebSocket play
	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (default %s depth %d)", cfg.Port, defaults.Algorithm, defaults.Depth)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited gracefully")
}
