package main

import (
	"github.com/fundbridge/intake-go/internal/api/middleware"
	"github.com/fundbridge/intake-go/internal/api/routes"
	"github.com/fundbridge/intake-go/internal/config"
	"github.com/fundbridge/intake-go/internal/config/db"
	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/internal/storage"
	"github.com/fundbridge/intake-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	log := logger.New(config.LogLevel, config.LogFormat)
	defer log.Sync()

	middleware.Init()
	db.Init()

	if err := db.DB.AutoMigrate(
		&user.User{},
		&funding.Application{},
		&funding.StatusChange{},
	); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	store := storage.InitMinio()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(router, db.DB, store)

	port := ":" + config.ServerPort
	log.Info("starting API server", zap.String("port", port))
	if err := router.Run(port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
