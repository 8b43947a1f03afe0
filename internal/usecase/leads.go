package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.uber.org/zap"
)

// LeadQueryUseCase serves a salesperson's own view of their leads.
type LeadQueryUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Scheduler NotificationScheduler
	Logger    *zap.Logger
}

func NewLeadQueryUseCase(leads entity.LeadRepositoryInterface, scheduler NotificationScheduler, logger *zap.Logger) *LeadQueryUseCase {
	return &LeadQueryUseCase{
		Leads:     leads,
		Scheduler: scheduler,
		Logger:    logger,
	}
}

func (uc *LeadQueryUseCase) Get(ctx context.Context, caller entity.Identity, leadID string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, databaseError("Error fetching customer", err)
	}
	if !caller.CanAccess(lead.UserID) {
		return nil, errForbidden
	}
	return lead, nil
}

func (uc *LeadQueryUseCase) ListMine(ctx context.Context, caller entity.Identity) ([]*entity.Lead, error) {
	leads, err := uc.Leads.ListByUser(ctx, caller.AccountID)
	if err != nil {
		return nil, databaseError("Error fetching customers", err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

// Delete removes the lead and drops its invitation if it has not gone out yet.
func (uc *LeadQueryUseCase) Delete(ctx context.Context, caller entity.Identity, leadID string) error {
	if _, err := uc.Get(ctx, caller, leadID); err != nil {
		return err
	}

	cancelled := uc.Scheduler.Cancel(leadID)

	if err := uc.Leads.Delete(ctx, leadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return errLeadNotFound
		}
		return databaseError("Error deleting customer", err)
	}

	uc.Logger.Info("lead deleted",
		zap.String("lead_id", leadID),
		zap.String("by", caller.AccountID),
		zap.Bool("invitation_cancelled", cancelled),
	)
	return nil
}
