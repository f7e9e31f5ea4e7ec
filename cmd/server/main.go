package main

import (
	"context"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	_ "learnhub/docs" // swagger docs

	"learnhub/internal/auth"
	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/db"
	"learnhub/internal/handler"
	"learnhub/internal/logger"
	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/router"
	"learnhub/internal/service"
)

// @title Learnhub API
// @version 1.0
// @description Education platform backend with JWT authentication, content management and progress tracking.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(os.Getenv("LOG_PRETTY") == "true")

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.Chapter{},
		&model.Course{},
		&model.ContentItem{},
		&model.UserProgress{},
		&model.UserActivity{},
		&model.SystemLog{},
		&model.UserSession{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)
	progressRepo := repository.NewProgressRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	catalogRepo := repository.NewCatalogRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	recorder := service.NewRecorder(activityRepo, log)
	authService := service.NewAuthService(userRepo, adminRepo, sessionRepo, jwtService, recorder, log)
	contentService := service.NewContentService(contentRepo, cacheClient, cfg.UploadDir, log)
	progressService := service.NewProgressService(progressRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	adminService := service.NewAdminService(userRepo, adminRepo, contentRepo, progressRepo, activityRepo, sessionRepo, cacheClient)

	// Seed the bootstrap admin through the regular create path.
	if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed bootstrap admin")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	contentHandler := handler.NewContentHandler(contentService, catalogService)
	progressHandler := handler.NewProgressHandler(progressService)
	adminHandler := handler.NewAdminHandler(adminService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, authHandler, contentHandler, progressHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Str("driver", cfg.DBDriver).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
