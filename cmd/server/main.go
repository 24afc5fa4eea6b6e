package main

import (
	"log"
	"net/http"

	_ "pressroom/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"pressroom/internal/auth"
	"pressroom/internal/cache"
	"pressroom/internal/config"
	"pressroom/internal/db"
	"pressroom/internal/handler"
	"pressroom/internal/model"
	"pressroom/internal/repository"
	"pressroom/internal/router"
	"pressroom/internal/service"
)

// @title Pressroom CMS API
// @version 1.0
// @description Role-based content management API with JWT authentication and article CRUD.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Article{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepo, articleRepo, jwtService)
	articleService := service.NewArticleService(articleRepo, cacheClient, cfg.ListCacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)

	// Register routes
	router.Register(e, cfg, jwtService, authHandler, articleHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
