// Package main is the entry point for the wallet ledger service.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"walletcore/internal/config"
	"walletcore/internal/handlers"
	"walletcore/internal/repositories"
	"walletcore/internal/services/auth"
	"walletcore/internal/services/exchange"
	"walletcore/internal/services/transaction"
)

func main() {
	config.LoadEnv()

	repo, cleanup, err := buildRepository()
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer cleanup()

	authSvc := auth.NewService(repo)
	txSvc := transaction.NewService(repo)
	exchangeSvc := exchange.NewService(repo)

	authH := handlers.NewAuthHandler(authSvc)
	txH := handlers.NewTransactionHandler(txSvc)
	userH := handlers.NewUserHandler(repo, exchangeSvc)
	accountH := handlers.NewAccountHandler(repo)
	productH := handlers.NewProductHandler(repo)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/auth/login", limiter.New(limiter.Config{Max: 10}))

	handlers.SetupRoutes(app, authH, txH, userH, accountH, productH)

	port := config.GetEnv("PORT", "3000")
	log.Printf("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// buildRepository selects the storage backend. The in-memory store is
// for local development without PostgreSQL or Redis.
func buildRepository() (repositories.LedgerRepository, func(), error) {
	if config.GetEnv("DB_DRIVER", "postgres") == "memory" {
		log.Println("using in-memory storage")
		return repositories.NewMemory(), func() {}, nil
	}

	db, err := repositories.Connect(repositories.DefaultDBConfig())
	if err != nil {
		return nil, nil, err
	}

	var cache repositories.CacheRepository = repositories.NoopCache{}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if config.GetEnv("REDIS_ENABLED", "true") == "true" {
		redisCache := repositories.NewRedisCache(repositories.NewRedisClient(&repositories.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		}))
		cache = redisCache

		dbCleanup := cleanup
		cleanup = func() {
			if err := redisCache.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
			dbCleanup()
		}
	}

	return repositories.NewLedgerRepository(db, cache), cleanup, nil
}
