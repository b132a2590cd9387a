package main

import (
	"log"
	"net/http"
	"os"

	_ "userdir/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"userdir/internal/auth"
	"userdir/internal/cache"
	"userdir/internal/config"
	"userdir/internal/db"
	"userdir/internal/handler"
	"userdir/internal/model"
	"userdir/internal/repository"
	"userdir/internal/router"
	"userdir/internal/service"
)

// @title User Directory API
// @version 1.0
// @description CRUD API over users and roles with filtered, paginated, sorted listings and JWT authentication.
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
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Role{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Seed the directory when starting against an empty database
	var userCount int64
	if err := gormDB.Model(&model.User{}).Count(&userCount).Error; err == nil && userCount == 0 {
		seed := model.SeedUsers()
		if err := gormDB.Create(&seed).Error; err != nil {
			log.Printf("Warning: seed users: %v", err)
		} else {
			log.Printf("Seeded %d users", len(seed))
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience)
	credStore := auth.NewCredentialStore(cfg.APIUsername, cfg.APIPassword)

	// Initialize services
	authService := service.NewAuthService(credStore, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, jwtService, authHandler, userHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
