package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.uber.org/zap"
)

type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Account, error)
}

type AlertSender interface {
	SendInterestAlert(to, salespersonName, leadName, leadEmail string) error
}

// Worker consumes interest confirmations and emails the owning salesperson.
type Worker struct {
	Channel  *amqp.Channel
	Accounts AccountFinder
	Mailer   AlertSender
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, accounts AccountFinder, mailer AlertSender, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Accounts: accounts,
		Mailer:   mailer,
		Logger:   logger,
	}
}

// Start blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("alert worker consuming", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var event InterestConfirmedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Error("malformed interest event", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log := w.Logger.With(zap.String("lead_id", event.LeadID), zap.String("source", event.Source))

	if err := w.processMessage(ctx, event); err != nil {
		log.Error("interest alert failed", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log.Info("interest alert sent")
	d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, event InterestConfirmedEvent) error {
	if event.AccountID == "" {
		return errors.New("event has no account id")
	}

	account, err := w.Accounts.FindByID(ctx, event.AccountID)
	if err != nil {
		return fmt.Errorf("load salesperson %s: %w", event.AccountID, err)
	}

	return w.Mailer.SendInterestAlert(account.Email, account.Name, event.LeadName, event.LeadEmail)
}
