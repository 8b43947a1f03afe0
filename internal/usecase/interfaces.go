package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

type TokenIssuer interface {
	Issue(accountID, email string, role entity.Role) (string, error)
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NotificationScheduler runs a job once after delay. Scheduling the same
// key again replaces the pending job.
type NotificationScheduler interface {
	Schedule(key string, delay time.Duration, job func(ctx context.Context))
	Cancel(key string) bool
}

type EmailService interface {
	SendLeadInvitation(to, name, content, confirmURL string) error
}

type EventPublisher interface {
	PublishInterestConfirmed(ctx context.Context, event queue.InterestConfirmedEvent) error
}

// Deduplicator reports whether key is seen for the first time. Forget
// releases a key claimed by IsNew.
type Deduplicator interface {
	IsNew(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}
