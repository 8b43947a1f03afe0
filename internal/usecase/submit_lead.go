package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/metrics"
	"go.uber.org/zap"
)

type SubmitLeadConfig struct {
	Attempts      int
	Backoff       time.Duration
	Delay         time.Duration
	PublicBaseURL string
}

type SubmitLeadUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Generator    TextGenerator
	Scheduler    NotificationScheduler
	EmailService EmailService
	Config       SubmitLeadConfig
	Logger       *zap.Logger

	// sleep waits between generation attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSubmitLeadUseCase(
	leads entity.LeadRepositoryInterface,
	generator TextGenerator,
	scheduler NotificationScheduler,
	emailService EmailService,
	cfg SubmitLeadConfig,
	logger *zap.Logger,
) *SubmitLeadUseCase {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &SubmitLeadUseCase{
		Leads:        leads,
		Generator:    generator,
		Scheduler:    scheduler,
		EmailService: emailService,
		Config:       cfg,
		Logger:       logger,
		sleep:        sleepContext,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if errs := ValidateSubmitLeadInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	lead := entity.NewLead(input.UserID, input.Name, input.Age, input.BusinessType, input.Location, input.Email)
	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, databaseError("Error saving customer information", err)
	}
	metrics.RecordLeadSubmitted()

	log := uc.Logger.With(zap.String("lead_id", lead.ID), zap.String("user_id", lead.UserID))

	content, err := uc.generate(ctx, BuildPrompt(lead))
	if err != nil {
		log.Error("content generation failed", zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeGenerationFailed,
			Message: "Failed to generate content after multiple attempts",
			Err:     err,
		}
	}

	if err := uc.Leads.UpdateNotificationStatus(ctx, lead.ID, entity.NotificationPending); err != nil {
		log.Error("failed to mark notification pending", zap.Error(err))
	}

	uc.Scheduler.Schedule(lead.ID, uc.Config.Delay, uc.deliverInvitation(lead.ID, content))
	log.Info("invitation scheduled", zap.Duration("delay", uc.Config.Delay))

	return &SubmitLeadOutput{
		Message:    "Customer info saved and email scheduled",
		CustomerID: lead.ID,
	}, nil
}

// generate calls the generator up to Attempts times, waiting Backoff between failures.
func (uc *SubmitLeadUseCase) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= uc.Config.Attempts; attempt++ {
		started := time.Now()
		text, err := uc.Generator.Generate(ctx, prompt)
		if err == nil {
			metrics.RecordGenerationAttempt("success", time.Since(started).Seconds())
			return text, nil
		}
		metrics.RecordGenerationAttempt("failure", time.Since(started).Seconds())
		lastErr = err

		uc.Logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", uc.Config.Attempts),
			zap.Error(err),
		)

		if attempt == uc.Config.Attempts {
			break
		}
		if err := uc.sleep(ctx, uc.Config.Backoff); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", uc.Config.Attempts, lastErr)
}

func (uc *SubmitLeadUseCase) deliverInvitation(leadID, content string) func(ctx context.Context) {
	return func(ctx context.Context) {
		log := uc.Logger.With(zap.String("lead_id", leadID))

		lead, err := uc.Leads.FindByID(ctx, leadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				log.Warn("lead removed before invitation was sent")
			} else {
				log.Error("failed to reload lead for invitation", zap.Error(err))
			}
			metrics.RecordNotificationEmail("skipped")
			return
		}

		link := ConfirmationLink(uc.Config.PublicBaseURL, lead.ID)
		if err := uc.EmailService.SendLeadInvitation(lead.Email, lead.Name, content, link); err != nil {
			log.Error("invitation email failed", zap.String("to", lead.Email), zap.Error(err))
			metrics.RecordNotificationEmail("failed")
			return
		}
		metrics.RecordNotificationEmail("sent")

		if err := uc.Leads.UpdateNotificationStatus(ctx, lead.ID, entity.NotificationSent); err != nil {
			log.Error("failed to mark notification sent", zap.Error(err))
			return
		}
		log.Info("invitation sent", zap.String("to", lead.Email))
	}
}

// BuildPrompt asks for a short thank-you note tailored to the lead.
func BuildPrompt(lead *entity.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, warm thank-you email to %s, ", lead.Name)
	fmt.Fprintf(&b, "who runs a %s business in %s, ", lead.BusinessType, lead.Location)
	b.WriteString("for their interest in our services. Mention how we can help a business like theirs grow. ")
	b.WriteString("Keep it under 150 words, plain text, no subject line and no placeholders.")
	return b.String()
}

func ConfirmationLink(baseURL, leadID string) string {
	return strings.TrimRight(baseURL, "/") + "/confirm-interest/" + url.PathEscape(leadID)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
