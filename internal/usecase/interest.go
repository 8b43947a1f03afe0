package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/metrics"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"go.uber.org/zap"
)

const (
	SourceLink      = "link"
	SourceAccept    = "accept_email"
	SourceDashboard = "dashboard"
)

type InterestUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Publisher EventPublisher
	Logger    *zap.Logger
}

func NewInterestUseCase(leads entity.LeadRepositoryInterface, publisher EventPublisher, logger *zap.Logger) *InterestUseCase {
	return &InterestUseCase{
		Leads:     leads,
		Publisher: publisher,
		Logger:    logger,
	}
}

// Confirm marks the lead interested on the prospect's behalf. No caller
// identity is involved; knowing the id is enough.
func (uc *InterestUseCase) Confirm(ctx context.Context, leadID, source string) (*entity.Lead, error) {
	lead, err := uc.find(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, lead, true, source)
}

// Set writes exactly the supplied flag for a lead the caller may access.
func (uc *InterestUseCase) Set(ctx context.Context, caller entity.Identity, leadID string, interested bool) (*entity.Lead, error) {
	lead, err := uc.find(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(lead.UserID) {
		return nil, errForbidden
	}
	return uc.apply(ctx, lead, interested, SourceDashboard)
}

func (uc *InterestUseCase) find(ctx context.Context, leadID string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, databaseError("Error updating interest", err)
	}
	return lead, nil
}

func (uc *InterestUseCase) apply(ctx context.Context, lead *entity.Lead, interested bool, source string) (*entity.Lead, error) {
	wasInterested := lead.Interested

	updated, err := uc.Leads.UpdateInterest(ctx, lead.ID, interested)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, databaseError("Error updating interest", err)
	}

	if interested && !wasInterested {
		metrics.RecordInterestConfirmation(source)
		uc.publish(ctx, updated, source)
	}

	return updated, nil
}

// publish failures are logged only; the flag is already stored.
func (uc *InterestUseCase) publish(ctx context.Context, lead *entity.Lead, source string) {
	event := queue.InterestConfirmedEvent{
		LeadID:      lead.ID,
		LeadName:    lead.Name,
		LeadEmail:   lead.Email,
		AccountID:   lead.UserID,
		Source:      source,
		ConfirmedAt: time.Now().UTC(),
	}
	if err := uc.Publisher.PublishInterestConfirmed(ctx, event); err != nil {
		uc.Logger.Error("failed to publish interest event",
			zap.String("lead_id", lead.ID),
			zap.Error(err),
		)
	}
}
