package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/haanhpham/autopress/adapters/event"
	"github.com/haanhpham/autopress/adapters/llm"
	"github.com/haanhpham/autopress/adapters/media_storage"
	"github.com/haanhpham/autopress/adapters/persistence"
	"github.com/haanhpham/autopress/adapters/wordpress"
	"github.com/haanhpham/autopress/internal/application/service"
	publishUC "github.com/haanhpham/autopress/internal/application/usecase/publish"
	taxonomyUC "github.com/haanhpham/autopress/internal/application/usecase/taxonomy"
	"github.com/haanhpham/autopress/internal/config"
	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

func main() {
	fmt.Println("Starting AutoPress Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	// WordPress client: lister, tag creator and publisher in one
	wpClient, err := wordpress.NewClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init WordPress client: %v", err)
	}

	// Taxonomy cache: Redis when configured, in-process otherwise
	var taxonomyCache taxonomy.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		taxonomyCache = persistence.NewRedisTaxonomyCache(redisClient, cfg.Taxonomy.CacheTTL, appLogger)
	} else {
		log.Println("Redis not configured, use in-memory taxonomy cache.")
		taxonomyCache = persistence.NewMemoryTaxonomyCache(cfg.Taxonomy.CacheTTL)
	}

	// LLM generator
	generator, err := llm.NewOpenAIAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init LLM adapter: %v", err)
	}

	// Featured images are optional
	var images service.ImageProvider
	if cfg.Cloudinary.CloudName != "" {
		images, err = media_storage.NewCloudinaryAdapter(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize image provider: %v", err)
		}
	} else {
		log.Println("Cloudinary not configured, publish without featured images.")
	}

	// Repositories
	jobRepo := persistence.NewPostgresJobRepo(dbPool)

	// Worker Use Cases
	reconcileUC := taxonomyUC.NewReconcileUseCase(wpClient, wpClient, taxonomyCache, wpClient.SiteURL(), appLogger)
	composeUC := publishUC.NewComposePostUseCase(jobRepo, generator, reconcileUC, wpClient, images, appLogger)

	// Kafka Consumer
	jobConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPublishJobs,
		GroupID:  "publish-job-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer jobConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicPublishJobs)

	ctx := context.Background()
	for {
		msg, err := jobConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.PublishJobPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(jobConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for JobID: %s", payload.EventType, payload.JobID)

		err = composeUC.Execute(ctx, payload.JobID)
		if err != nil {
			log.Printf("ERROR: Failed to process job %s: %v", payload.JobID, err)
			// the failure is recorded on the job row, commit so we do not loop
		}

		commitMessage(jobConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
