package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InboundReply is a message received through the inbound mail webhook.
type InboundReply struct {
	ID        string    `json:"id" bson:"_id"`
	Sender    string    `json:"sender" bson:"sender"`
	Subject   string    `json:"subject" bson:"subject"`
	Body      string    `json:"body" bson:"body"`
	LeadID    string    `json:"customerId,omitempty" bson:"lead_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

func NewInboundReply(sender, subject, body, leadID string) *InboundReply {
	return &InboundReply{
		ID:        uuid.New().String(),
		Sender:    sender,
		Subject:   subject,
		Body:      body,
		LeadID:    leadID,
		CreatedAt: time.Now().UTC(),
	}
}

type InboundReplyRepositoryInterface interface {
	Create(ctx context.Context, reply *InboundReply) error
	List(ctx context.Context, limit int) ([]*InboundReply, error)
}
