package main

import (
	"log"
	"net/http"

	_ "caltrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"caltrack/internal/auth"
	"caltrack/internal/cache"
	"caltrack/internal/config"
	"caltrack/internal/db"
	"caltrack/internal/handler"
	"caltrack/internal/model"
	"caltrack/internal/nutrition"
	"caltrack/internal/repository"
	"caltrack/internal/router"
	"caltrack/internal/service"
)

// @title Calorie Tracker API
// @version 1.0
// @description Calorie tracking API with role-based access, calorie auto-fill via Nutritionix, and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Entry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	// Initialize auth and nutrition components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	lookup := nutrition.NewCachedLookup(
		nutrition.NewClient(cfg.NutritionixURL, cfg.NutritionixAppID, cfg.NutritionixAppKey, cfg.NutritionTimeout),
		cacheClient,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, authService)
	entryService := service.NewEntryService(entryRepo, userRepo, lookup)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	entryHandler := handler.NewEntryHandler(entryService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		entryHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
