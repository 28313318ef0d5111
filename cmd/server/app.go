package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/ai"
	routes "github.com/filmfriend/filmfriend/internal/api"
	v1 "github.com/filmfriend/filmfriend/internal/api/v1"
	"github.com/filmfriend/filmfriend/internal/cache"
	"github.com/filmfriend/filmfriend/internal/config"
	"github.com/filmfriend/filmfriend/internal/db"
	"github.com/filmfriend/filmfriend/internal/models"
	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/logger"
	storage "github.com/filmfriend/filmfriend/pkg/redis"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// The cache is optional: without REDIS_ADDR every cache operation is a
	// no-op and reads go straight to Postgres.
	var redisClient *storage.RedisClient
	if cfg.RedisAddr != "" {
		redisClient, err = storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Redis unavailable, caching disabled")
			redisClient = nil
		}
	}

	gormDB, err := db.NewDB(ctx, cfg.DatabaseURL, models.All(), db.WithLogger(log))
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize PostgreSQL database")
		log.Close()
		os.Exit(1)
	}

	appCache := cache.New(redisClient, log)
	appStore := store.New(gormDB, appCache)

	// Seed the mock account; signup is out of scope.
	if _, err := appStore.EnsureUser(ctx, &models.User{ID: v1.MockUserID, Username: "filmfriend"}); err != nil {
		log.Warn(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to seed mock user")
	}

	var engine *ai.Engine
	if cfg.GeminiAPIKey != "" {
		engine = ai.NewEngine(ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))
	} else {
		log.Warn(ctx).Logs("GEMINI_API_KEY not set, recommendations disabled")
	}

	app := fiber.New()
	routes.NewRoutes(app, log, v1.New(appStore, engine, log))

	go func() {
		if err := app.Listen(cfg.ServerAddr); err != nil {
			log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
		}
	}()
	log.Info(ctx).WithFields(cfg.ServerAddr).Logs("Server listening on %s")

	// Explicit shutdown ordering: stop accepting requests, then close the
	// cache, the database, and finally the logger.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx).Logs("Shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("HTTP shutdown failed")
	}
	if redisClient != nil {
		redisClient.Close(log)
	}
	db.CloseDB(gormDB, log)
	log.Close()
}
