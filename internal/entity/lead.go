package entity

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationSubmitted NotificationStatus = "SUBMITTED"
	NotificationPending   NotificationStatus = "PENDING"
	NotificationSent      NotificationStatus = "SENT"
)

type LeadStage string

const (
	StageSubmitted           LeadStage = "Submitted"
	StageNotificationPending LeadStage = "NotificationPending"
	StageNotificationSent    LeadStage = "NotificationSent"
	StageConfirmed           LeadStage = "Confirmed"
)

// Lead is a prospective customer submitted by a salesperson.
type Lead struct {
	ID                 string             `json:"id" bson:"_id"`
	Name               string             `json:"name" bson:"name"`
	Age                int                `json:"age" bson:"age"`
	BusinessType       string             `json:"businessType" bson:"business_type"`
	Location           string             `json:"location" bson:"location"`
	Email              string             `json:"email" bson:"email"`
	UserID             string             `json:"userId" bson:"user_id"`
	Interested         bool               `json:"interested" bson:"interested"`
	NotificationStatus NotificationStatus `json:"notificationStatus" bson:"notification_status"`
	CreatedAt          time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updated_at"`
}

func NewLead(userID, name string, age int, businessType, location, email string) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(name),
		Age:                age,
		BusinessType:       strings.TrimSpace(businessType),
		Location:           strings.TrimSpace(location),
		Email:              NormalizeEmail(email),
		UserID:             userID,
		Interested:         false,
		NotificationStatus: NotificationSubmitted,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Stage maps the stored flags onto the notification lifecycle.
func (l *Lead) Stage() LeadStage {
	switch {
	case l.Interested && l.NotificationStatus == NotificationSent:
		return StageConfirmed
	case l.NotificationStatus == NotificationSent:
		return StageNotificationSent
	case l.NotificationStatus == NotificationPending:
		return StageNotificationPending
	default:
		return StageSubmitted
	}
}

// MarshalJSON adds the derived stage to the stored fields.
func (l Lead) MarshalJSON() ([]byte, error) {
	type plain Lead
	return json.Marshal(struct {
		plain
		Stage LeadStage `json:"stage"`
	}{plain(l), l.Stage()})
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindLatestByEmail(ctx context.Context, email string) (*Lead, error)
	ListByUser(ctx context.Context, userID string) ([]*Lead, error)
	UpdateInterest(ctx context.Context, id string, interested bool) (*Lead, error)
	UpdateNotificationStatus(ctx context.Context, id string, status NotificationStatus) error
	Delete(ctx context.Context, id string) error
	CountStalePending(ctx context.Context, olderThan time.Time) (int, error)
}
