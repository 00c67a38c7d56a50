// Package events publishes detection outcomes to Kafka for downstream
// consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"voiceguard/types"

	"github.com/IBM/sarama"
)

// DetectionEvent is emitted once per completed detection
type DetectionEvent struct {
	RequestID       string    `json:"request_id"`
	Source          string    `json:"source"` // "upload" or "api"
	Filename        string    `json:"filename,omitempty"`
	Status          string    `json:"status"`
	IsAIGenerated   bool      `json:"is_ai_generated"`
	ConfidenceScore string    `json:"confidence_score"`
	Language        string    `json:"language"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewDetectionEvent summarizes a normalized result
func NewDetectionEvent(source, filename string, res types.DetectionResult) DetectionEvent {
	return DetectionEvent{
		RequestID:       res.RequestID,
		Source:          source,
		Filename:        filename,
		Status:          res.Status,
		IsAIGenerated:   res.IsAIGenerated,
		ConfidenceScore: res.ConfidenceScore,
		Language:        res.LanguageInfo.Language,
		CompletedAt:     time.Now().UTC(),
	}
}

// Publisher delivers detection events
type Publisher interface {
	PublishDetection(ctx context.Context, ev DetectionEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishDetection(context.Context, DetectionEvent) error { return nil }
func (NopPublisher) Close() error                                           { return nil }

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaPublisher writes events to a Kafka topic keyed by request id
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher connects a synchronous producer to the brokers
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	log.Printf("✅ Kafka producer ready (topic: %s)", cfg.Topic)
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// PublishDetection sends ev as JSON. ctx is checked before sending only;
// the sarama producer applies its own timeout.
func (p *KafkaPublisher) PublishDetection(ctx context.Context, ev DetectionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal detection event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.RequestID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish detection event: %w", err)
	}
	log.Printf("📨 Published detection %s (partition=%d, offset=%d)", ev.RequestID, partition, offset)
	return nil
}

// Close flushes and closes the producer
func (p *KafkaPublisher) Close() error {
	log.Println("Closing Kafka producer...")
	return p.producer.Close()
}

// FromBrokers returns a KafkaPublisher when brokers are configured and a
// NopPublisher otherwise. Connection failures disable publishing.
func FromBrokers(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Printf("Kafka not configured; detection events disabled")
		return NopPublisher{}
	}
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: brokers, Topic: topic})
	if err != nil {
		log.Printf("Warning: %v (detection events disabled)", err)
		return NopPublisher{}
	}
	return p
}
