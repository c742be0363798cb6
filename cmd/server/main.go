package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/rajput-vishal01/videovault/internal/config"
	"github.com/rajput-vishal01/videovault/internal/database"
	"github.com/rajput-vishal01/videovault/internal/handlers"
	"github.com/rajput-vishal01/videovault/internal/imagekit"
	"github.com/rajput-vishal01/videovault/internal/metrics"
	"github.com/rajput-vishal01/videovault/internal/middleware"
	"github.com/rajput-vishal01/videovault/internal/repository"
	"github.com/rajput-vishal01/videovault/internal/routes"
	"github.com/rajput-vishal01/videovault/internal/services"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Infof("starting videovault in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	// Mongo
	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	videoRepo := repository.NewMongoVideoRepo(db, "videos")
	userRepo := repository.NewMongoUserRepo(db, "users")

	// Redis (rate limiting)
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatalf("redis connect: %v", err)
	}

	// media CDN
	cdn := imagekit.NewClient(cfg.ImageKit.PublicKey, cfg.ImageKit.PrivateKey, cfg.ImageKit.UploadEndpoint, cfg.AuthParamsTTL)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL)
	videoSvc := services.NewVideoService(videoRepo, userRepo, logger)
	authSvc := services.NewAuthService(userRepo, tokens, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // metadata only; file bytes go straight to the CDN
	})
	app.Use(cors.New())
	app.Use(metrics.Count())
	app.Use(middleware.RequestLogger(logger.Desugar()))
	app.Use(middleware.AccessGate(tokens))

	limiter := middleware.NewRateLimiter(rdb, "rl:auth", cfg.RateLimit.AuthPerMinute, time.Minute)
	routes.Register(app, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc, cdn, cfg.AccessTokenTTL, logger),
		Videos:      handlers.NewVideoHandler(videoSvc, logger),
		AuthLimiter: limiter,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutCtx); err != nil {
		logger.Errorf("fiber shutdown: %v", err)
	}
	if err := mongoClient.Disconnect(shutCtx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	if err := rdb.Close(); err != nil {
		logger.Errorf("redis close: %v", err)
	}
	logger.Info("shutdown complete")
}
