package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/rajanimaurya/internship-recommender/internal/logging"
)

const allocationQueue = "allocation_events"

// AllocationEvent is published whenever a candidate is allocated to an
// internship, for downstream consumers (notifications, reporting).
type AllocationEvent struct {
	UserID       string    `json:"user_id"`
	InternshipID int64     `json:"internship_id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	MatchScore   int       `json:"match_score"`
	AllocatedAt  time.Time `json:"allocated_at"`
}

// EventPublisher emits allocation events.
type EventPublisher interface {
	PublishAllocation(ctx context.Context, ev AllocationEvent) error
	Close() error
}

// NopPublisher drops events. Used when no AMQP URL is configured.
type NopPublisher struct{}

func (NopPublisher) PublishAllocation(context.Context, AllocationEvent) error { return nil }
func (NopPublisher) Close() error                                             { return nil }

// AMQPPublisher publishes allocation events to a RabbitMQ queue.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  logging.Logger
}

// NewAMQPPublisher dials the broker and declares the allocation queue.
func NewAMQPPublisher(url string, logger logging.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(allocationQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, logger: logger}, nil
}

func (p *AMQPPublisher) PublishAllocation(ctx context.Context, ev AllocationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.channel.Publish("", allocationQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	p.logger.Debug(ctx, "allocation event published", "user_id", ev.UserID, "internship_id", ev.InternshipID)
	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
