// Package events publishes booking lifecycle events to Kafka. Publication is
// best-effort: a failed publish is logged and never affects the outcome of
// the booking transaction that triggered it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"bookcal/pkg/config"
	"bookcal/pkg/logger"
	"bookcal/pkg/model"
)

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	writer       *kafka.Writer
	writeTimeout time.Duration
	log          *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a no-op publisher when
// no brokers are configured.
func NewPublisher(cfg *config.Config) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEventsTopic,
		Balancer:     &kafka.Hash{}, // key by resource id so per-resource ordering holds
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}

	cfg.Log.Info("Booking event publisher initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaEventsTopic,
	)

	return &kafkaPublisher{
		writer:       writer,
		writeTimeout: cfg.KafkaWriteTimeout,
		log:          cfg.Log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCancelled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	eventID := uuid.NewString()
	event := newBookingEvent(eventType, eventID, booking)

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode booking event", "event_type", eventType, "error", err)
		return
	}

	// Detached from the request context: the transaction already committed,
	// so a cancelled request must not abort the publish mid-flight.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(publishCtx, kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(eventID)},
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", event.BookingID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"event_id", eventID,
		"booking_id", event.BookingID,
	)
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (noopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (noopPublisher) Close() error                                     { return nil }
