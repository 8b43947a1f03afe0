package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const defaultInboundLimit = 100

type AdminReportUseCase struct {
	Accounts entity.AccountRepositoryInterface
	Leads    entity.LeadRepositoryInterface
	Replies  entity.InboundReplyRepositoryInterface
}

func NewAdminReportUseCase(
	accounts entity.AccountRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	replies entity.InboundReplyRepositoryInterface,
) *AdminReportUseCase {
	return &AdminReportUseCase{
		Accounts: accounts,
		Leads:    leads,
		Replies:  replies,
	}
}

// SalesPeople lists non-admin accounts with how many leads each submitted.
func (uc *AdminReportUseCase) SalesPeople(ctx context.Context) ([]entity.SalesPerson, error) {
	people, err := uc.Accounts.ListSalesPeople(ctx)
	if err != nil {
		return nil, databaseError("Error fetching users", err)
	}
	if people == nil {
		people = []entity.SalesPerson{}
	}
	return people, nil
}

func (uc *AdminReportUseCase) LeadsOf(ctx context.Context, accountID string) ([]*entity.Lead, error) {
	if _, err := uc.Accounts.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, entity.ErrAccountNotFound) {
			return nil, &DomainError{Code: CodeAccountNotFound, Message: "User not found"}
		}
		return nil, databaseError("Error fetching customers", err)
	}

	leads, err := uc.Leads.ListByUser(ctx, accountID)
	if err != nil {
		return nil, databaseError("Error fetching customers", err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

func (uc *AdminReportUseCase) InboundReplies(ctx context.Context, limit int) ([]*entity.InboundReply, error) {
	if limit <= 0 || limit > defaultInboundLimit {
		limit = defaultInboundLimit
	}
	replies, err := uc.Replies.List(ctx, limit)
	if err != nil {
		return nil, databaseError("Error fetching emails", err)
	}
	if replies == nil {
		replies = []*entity.InboundReply{}
	}
	return replies, nil
}
