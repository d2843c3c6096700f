// Package notification publishes event lifecycle notices to a message broker.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/alumni-portal/backend/internal/metrics"
)

// Kind names the lifecycle change a notice describes.
type Kind string

const (
	EventCreated Kind = "event.created"
	EventUpdated Kind = "event.updated"
	EventDeleted Kind = "event.deleted"
)

// Notice is the message body written to the topic.
type Notice struct {
	Kind       Kind       `json:"kind"`
	EventID    uint       `json:"event_id"`
	EventName  string     `json:"event_name,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, n Notice) error
	Close() error
}

// ============================
// 🔔 Kafka
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher writes synchronously to topic, keyed by event id so every
// notice for one event lands on the same partition.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, n Notice) error {
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(n.EventID), 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	})
	if err != nil {
		metrics.NotificationsPublished.WithLabelValues(string(n.Kind), "failure").Inc()
		return fmt.Errorf("publish %s: %w", n.Kind, err)
	}

	metrics.NotificationsPublished.WithLabelValues(string(n.Kind), "success").Inc()
	zerolog.Ctx(ctx).Debug().Str("kind", string(n.Kind)).Uint("event_id", n.EventID).Msg("notice published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every notice. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Notice) error { return nil }
func (NopPublisher) Close() error                          { return nil }

// New returns a Kafka publisher when brokers are configured, a NopPublisher otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
