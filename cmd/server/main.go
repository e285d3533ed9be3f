package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"reservation_system/internal/api"        // Custom package for API handlers
	"reservation_system/internal/config"     // Custom package for configuration
	"reservation_system/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database.
	// TranslateError turns duplicate-key failures into gorm.ErrDuplicatedKey,
	// which the reservation core relies on to report race losers as conflicts.
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client for the availability and admin list caches
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err = redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))

	// Authenticated routes (protected by JWT), including the explicit
	// session refresh used after profile mutations
	authGroup := r.Group("/")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.POST("/auth/refresh", api.RefreshSessionHandler(db, cfg.JWTSecret))
	authGroup.GET("/reservations", api.ListReservationsHandler(db, redisClient))
	authGroup.POST("/reservations", api.CreateReservationsHandler(db, redisClient))
	authGroup.DELETE("/reservations/:date", api.DeleteReservationHandler(db, redisClient))
	authGroup.PATCH("/profile", api.UpdateProfileHandler(db, cfg.JWTSecret))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/reservations", api.AdminListReservationsHandler(db, redisClient))
	adminGroup.DELETE("/reservations/:date", api.AdminDeleteReservationHandler(db, redisClient))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
