package main

import (
	"context"
	"log"
	"net/http"

	_ "storeapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"storeapi/internal/auth"
	"storeapi/internal/cache"
	"storeapi/internal/config"
	"storeapi/internal/db"
	"storeapi/internal/handler"
	"storeapi/internal/model"
	"storeapi/internal/rbac"
	"storeapi/internal/repository"
	"storeapi/internal/router"
	"storeapi/internal/service"
)

// @title Store Records API
// @version 1.0
// @description Store records API with category management behind bearer-token authentication and static role-based access control.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "change-me" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable, continuing without cache: %v", err)
	}

	// Static role table, injected rather than global
	roleTable := rbac.Default()

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, tokenService, roleTable)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	router.Register(
		e,
		cfg,
		roleTable,
		tokenService,
		userRepo,
		authHandler,
		categoryHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
