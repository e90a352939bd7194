// Package events publishes post-commit domain events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"booking-system/airline/internal/logging"

	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated = "booking.created"
	TypeFlightCreated  = "flight.created"
	TypeFlightUpdated  = "flight.updated"
	TypeFlightDeleted  = "flight.deleted"
	TypeFlightRestored = "flight.restored"
)

type Event struct {
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	UserID     int64     `json:"user_id,omitempty"`
	FlightID   int64     `json:"flight_id,omitempty"`
	SeatID     int64     `json:"seat_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is called after commit. A failed publish never undoes the
// committed change, so callers only log the error.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EntityID, 10)),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event Event) error {
	logging.Debug("event dropped, no broker configured", "type", event.Type, "entity_id", event.EntityID)
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Recorder keeps events in memory. Tests use it to assert what was published.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
