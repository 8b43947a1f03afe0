package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/metrics"
	"go.uber.org/zap"
)

// RecordInboundReplyUseCase stores replies posted by the inbound mail webhook.
type RecordInboundReplyUseCase struct {
	Replies entity.InboundReplyRepositoryInterface
	Leads   entity.LeadRepositoryInterface
	Dedup   Deduplicator
	Logger  *zap.Logger
}

func NewRecordInboundReplyUseCase(
	replies entity.InboundReplyRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	dedup Deduplicator,
	logger *zap.Logger,
) *RecordInboundReplyUseCase {
	return &RecordInboundReplyUseCase{
		Replies: replies,
		Leads:   leads,
		Dedup:   dedup,
		Logger:  logger,
	}
}

func (uc *RecordInboundReplyUseCase) Execute(ctx context.Context, input InboundReplyInput) (*InboundReplyOutput, error) {
	if errs := ValidateInboundReplyInput(input); len(errs) > 0 {
		metrics.RecordInboundReply("invalid")
		return nil, newValidationError(errs)
	}

	key := DedupKey(input)
	claimed := false
	if uc.Dedup != nil {
		fresh, err := uc.Dedup.IsNew(ctx, key)
		if err != nil {
			uc.Logger.Warn("dedup check failed, accepting message", zap.Error(err))
		} else if !fresh {
			metrics.RecordInboundReply("duplicate")
			return &InboundReplyOutput{Duplicate: true}, nil
		}
		claimed = err == nil
	}

	leadID := uc.matchLead(ctx, input)

	reply := entity.NewInboundReply(strings.TrimSpace(input.Sender), input.Subject, input.Body, leadID)
	if err := uc.Replies.Create(ctx, reply); err != nil {
		metrics.RecordInboundReply("error")
		if claimed {
			// the provider retries on 5xx; the retry must not be taken for a duplicate
			if ferr := uc.Dedup.Forget(context.WithoutCancel(ctx), key); ferr != nil {
				uc.Logger.Error("failed to release dedup key", zap.String("key", key), zap.Error(ferr))
			}
		}
		return nil, databaseError("Error storing email", err)
	}

	metrics.RecordInboundReply("stored")
	uc.Logger.Info("inbound reply stored",
		zap.String("reply_id", reply.ID),
		zap.String("lead_id", leadID),
	)
	return &InboundReplyOutput{ID: reply.ID, LeadID: leadID}, nil
}

// matchLead prefers an explicit customerId, then the newest lead with the
// sender's address. Lookup failures leave the reply unlinked.
func (uc *RecordInboundReplyUseCase) matchLead(ctx context.Context, input InboundReplyInput) string {
	if id := strings.TrimSpace(input.CustomerID); id != "" {
		lead, err := uc.Leads.FindByID(ctx, id)
		if err == nil {
			return lead.ID
		}
		if !errors.Is(err, entity.ErrLeadNotFound) {
			uc.Logger.Warn("lead lookup by id failed", zap.String("lead_id", id), zap.Error(err))
		}
	}

	addr, err := mail.ParseAddress(input.Sender)
	if err != nil {
		return ""
	}
	lead, err := uc.Leads.FindLatestByEmail(ctx, entity.NormalizeEmail(addr.Address))
	if err != nil {
		if !errors.Is(err, entity.ErrLeadNotFound) {
			uc.Logger.Warn("lead lookup by email failed", zap.Error(err))
		}
		return ""
	}
	return lead.ID
}

// DedupKey is the provider message id when present, else a digest of the content.
func DedupKey(input InboundReplyInput) string {
	if id := strings.TrimSpace(input.MessageID); id != "" {
		return "msg:" + id
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(input.Sender) + "\x00" + input.Subject + "\x00" + input.Body))
	return "sha:" + hex.EncodeToString(sum[:])
}
