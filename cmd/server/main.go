package main

import (
	"log"
	"net/http"

	_ "maaziride/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"maaziride/internal/auth"
	"maaziride/internal/cache"
	"maaziride/internal/config"
	"maaziride/internal/db"
	"maaziride/internal/handler"
	"maaziride/internal/logging"
	"maaziride/internal/mirror"
	"maaziride/internal/model"
	"maaziride/internal/queue"
	"maaziride/internal/realtime"
	"maaziride/internal/repository"
	"maaziride/internal/router"
	"maaziride/internal/service"
)

// @title Maazi Ride API
// @version 1.0
// @description Ride-sharing backend with driver verification, admin moderation, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
		&model.Ride{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Reconciliation queue is optional; without it, failed mirror writes
	// are only logged.
	var tasks queue.Publisher
	if mq, err := queue.Dial(cfg.AMQPURL); err != nil {
		logger.Warn("rabbitmq unavailable, mirror reconciliation disabled", zap.Error(err))
	} else {
		defer mq.Close()
		tasks = mq
	}

	mirrorClient := mirror.NewClient(cfg.MirrorBaseURL, cfg.MirrorAPIKey)
	hub := realtime.NewHub()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	rideRepo := repository.NewRideRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mirrorClient, tasks, logger)
	driverService := service.NewDriverService(userRepo, vehicleRepo, cacheClient)
	adminService := service.NewAdminService(userRepo, vehicleRepo, mirrorClient, tasks, hub, cacheClient, logger)
	rideService := service.NewRideService(rideRepo, userRepo, vehicleRepo, txManager, hub)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	driverHandler := handler.NewDriverHandler(driverService)
	adminHandler := handler.NewAdminHandler(adminService)
	rideHandler := handler.NewRideHandler(rideService)
	wsHandler := handler.NewWSHandler(hub, cfg.WSOrigin)

	router.Register(
		e,
		cfg,
		userRepo,
		vehicleRepo,
		authHandler,
		driverHandler,
		adminHandler,
		rideHandler,
		wsHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
