package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/voltclass/labtrack-api/internal/config"
	"github.com/voltclass/labtrack-api/internal/database"
	"github.com/voltclass/labtrack-api/internal/handler"
	"github.com/voltclass/labtrack-api/internal/middleware"
	"github.com/voltclass/labtrack-api/internal/repository"
	"github.com/voltclass/labtrack-api/internal/router"
	"github.com/voltclass/labtrack-api/internal/service"
	"github.com/voltclass/labtrack-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	st, err := store.New(db, logger)
	if err != nil {
		log.Fatalf("failed to initialise blob store: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, stats caching disabled")
	}

	ctx := context.Background()

	userRepo, err := repository.NewUserRepository(ctx, st, logger)
	if err != nil {
		log.Fatalf("failed to load users collection: %v", err)
	}
	taskRepo, err := repository.NewTaskRepository(ctx, st, logger)
	if err != nil {
		log.Fatalf("failed to load tasks collection: %v", err)
	}
	reportRepo, err := repository.NewReportRepository(ctx, st, logger)
	if err != nil {
		log.Fatalf("failed to load reports collection: %v", err)
	}
	activityRepo, err := repository.NewActivityRepository(ctx, st, logger)
	if err != nil {
		log.Fatalf("failed to load activities collection: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	sessions := service.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL)

	activityService := service.NewActivityService(activityRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, sessions, activityService, validate, logger)
	taskService := service.NewTaskService(taskRepo, userRepo, activityService, validate, logger)
	reportService := service.NewReportService(reportRepo, userRepo, activityService, validate, logger)
	userService := service.NewUserService(userRepo, activityService, validate, logger)
	statsService := service.NewStatsService(userRepo, taskRepo, reportRepo, redisClient, cfg.StatsCacheTTL, logger)
	dashboardService := service.NewDashboardService(statsService, taskService, activityService, logger)

	authHandler := handler.NewAuthHandler(authService, userService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		TaskHandler:       taskHandler,
		ReportHandler:     reportHandler,
		UserHandler:       userHandler,
		ActivityHandler:   activityHandler,
		DashboardHandler:  dashboardHandler,
		SessionMiddleware: middleware.SessionProtected(sessions),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
