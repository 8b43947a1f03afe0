package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// InterestConfirmedEvent is published once a lead flips to interested.
type InterestConfirmedEvent struct {
	LeadID      string    `json:"leadId"`
	LeadName    string    `json:"leadName"`
	LeadEmail   string    `json:"leadEmail"`
	AccountID   string    `json:"accountId"`
	Source      string    `json:"source"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

type Producer interface {
	PublishInterestConfirmed(ctx context.Context, event InterestConfirmedEvent) error
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishInterestConfirmed(ctx context.Context, event InterestConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.LeadID,
			Timestamp:    event.ConfirmedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}
	return nil
}

// NopProducer drops events; used when no broker is configured.
type NopProducer struct{}

func (NopProducer) PublishInterestConfirmed(context.Context, InterestConfirmedEvent) error {
	return nil
}
