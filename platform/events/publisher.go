package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ActivityEvent is the message published for every stored activity.
type ActivityEvent struct {
	ActivityID   string    `json:"activity_id"`
	ActivityType string    `json:"activity_type"`
	Feature      *string   `json:"feature"`
	Action       string    `json:"action"`
	Notes        *string   `json:"notes"`
	Endpoint     string    `json:"endpoint"`
	ContactID    *string   `json:"contact_id,omitempty"`
	Email        *string   `json:"email,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Key partitions events per user so one user's stream stays ordered.
func (e ActivityEvent) Key() []byte {
	switch {
	case e.Email != nil && *e.Email != "":
		return []byte(*e.Email)
	case e.ContactID != nil && *e.ContactID != "":
		return []byte(*e.ContactID)
	default:
		return []byte(e.ActivityID)
	}
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits activity events to Kafka.
type Publisher struct {
	writer    *kafka.Writer
	out       messageWriter
	logger    *zap.Logger
	closeOnce sync.Once
	closeErr  error
}

// NewPublisher builds a Kafka-backed publisher for topic.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		ReadTimeout:            10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer, out: writer, logger: logger}
}

// Publish serialises event and writes it to the topic.
func (p *Publisher) Publish(ctx context.Context, event ActivityEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}

	msg := kafka.Message{
		Key:   event.Key(),
		Value: value,
		Headers: []kafka.Header{
			{Key: "activity_type", Value: []byte(event.ActivityType)},
		},
	}
	if err := p.out.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write activity event: %w", err)
	}

	p.logger.Debug("activity event published",
		zap.String("activity_id", event.ActivityID),
		zap.String("action", event.Action))
	return nil
}

// Close flushes and closes the writer. Safe to call more than once.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.out.Close()
	})
	return p.closeErr
}
