package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) ListSalesPeople(ctx context.Context) ([]entity.SalesPerson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SalesPerson), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateInterest(ctx context.Context, id string, interested bool) (*entity.Lead, error) {
	args := m.Called(ctx, id, interested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateNotificationStatus(ctx context.Context, id string, status entity.NotificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountStalePending(ctx context.Context, olderThan time.Time) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *entity.InboundReply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) List(ctx context.Context, limit int) ([]*entity.InboundReply, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.InboundReply), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendLeadInvitation(to, name, content, confirmURL string) error {
	args := m.Called(to, name, content, confirmURL)
	return args.Error(0)
}

type MockDedup struct {
	mock.Mock
}

func (m *MockDedup) IsNew(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedup) Forget(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Matches(hash, password string) bool { return hash == "hashed:"+password }

type stubTokens struct{}

func (stubTokens) Issue(accountID, email string, role entity.Role) (string, error) {
	return "token-" + accountID, nil
}

// recordingScheduler keeps jobs without running them.
type recordingScheduler struct {
	scheduled map[string]time.Duration
	cancelled []string
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{scheduled: make(map[string]time.Duration)}
}

func (s *recordingScheduler) Schedule(key string, delay time.Duration, job func(ctx context.Context)) {
	s.scheduled[key] = delay
}

func (s *recordingScheduler) Cancel(key string) bool {
	s.cancelled = append(s.cancelled, key)
	_, ok := s.scheduled[key]
	delete(s.scheduled, key)
	return ok
}

type recordingPublisher struct {
	events []queue.InterestConfirmedEvent
}

func (p *recordingPublisher) PublishInterestConfirmed(ctx context.Context, event queue.InterestConfirmedEvent) error {
	p.events = append(p.events, event)
	return nil
}

var (
	salesperson = entity.Identity{AccountID: "user-1", Email: "sam@x.com", Role: entity.RoleUser}
	otherUser   = entity.Identity{AccountID: "user-2", Email: "kim@x.com", Role: entity.RoleUser}
	admin       = entity.Identity{AccountID: "admin-1", Email: "admin@x.com", Role: entity.RoleAdmin}
)

// serve routes a single request through chi so URL params resolve, with
// identity (when non-nil) already in the request context.
func serve(method, pattern, target string, body []byte, identity *entity.Identity, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
