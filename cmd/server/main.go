package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haanhpham/autopress/adapters/event"
	httpAdapter "github.com/haanhpham/autopress/adapters/http"
	"github.com/haanhpham/autopress/adapters/persistence"
	authUC "github.com/haanhpham/autopress/internal/application/usecase/auth"
	publishUC "github.com/haanhpham/autopress/internal/application/usecase/publish"
	"github.com/haanhpham/autopress/internal/config"
	"github.com/haanhpham/autopress/pkg/auth"
	"github.com/haanhpham/autopress/pkg/logger"
	"github.com/haanhpham/autopress/pkg/tracing"
)

func main() {
	fmt.Println("Start AutoPress API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "autopress-api")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	jobRepo := persistence.NewPostgresJobRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(cfg.Auth.AdminPasswordHash, jwtSvc, appLogger)
	requestPublishUseCase := publishUC.NewRequestPublishUseCase(jobRepo, kafkaClient, appLogger)
	getJobUseCase := publishUC.NewGetJobUseCase(jobRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	publishHandler := httpAdapter.NewPublishHandler(requestPublishUseCase, getJobUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{

		admin := api.Group("/admin")
		{

			admin.POST("/auth/login", authHandler.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(authMiddleware)
			{
				adminPrivate.POST("/publish", publishHandler.CreatePublishJob)
				adminPrivate.GET("/jobs/:id", publishHandler.GetJob)
			}
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
