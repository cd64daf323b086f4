package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/haanhpham/autopress/internal/config"
)

const (
	TopicPublishJobs = "publish.jobs"

	JobEventTypeRequested = "requested"
)

type PublishJobPayload struct {
	EventType string    `json:"event_type"`
	JobID     uuid.UUID `json:"job_id"`
}

type KafkaProducerClient struct {
	PublishJobsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'publish.jobs'
	jobsWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPublishJobs,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		PublishJobsWriter: jobsWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishJobEvent(ctx context.Context, payload PublishJobPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.JobID.String()),
		Value: value,
	}

	if err := c.PublishJobsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write job event failed: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PublishJobsWriter != nil {
		c.PublishJobsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
