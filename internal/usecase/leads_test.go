package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.uber.org/zap"
)

func TestLeadQuery_Get(t *testing.T) {
	lead := leadOwnedBy("U", false)
	leads := new(MockLeadRepository)
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewLeadQueryUseCase(leads, newFakeScheduler(), zap.NewNop())

	got, err := uc.Get(context.Background(), entity.Identity{AccountID: "U"}, lead.ID)
	require.NoError(t, err)
	assert.False(t, got.Interested)
	assert.Equal(t, entity.StageSubmitted, got.Stage())

	_, err = uc.Get(context.Background(), entity.Identity{AccountID: "V"}, lead.ID)
	de, _ := AsDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, CodeForbidden, de.Code)

	_, err = uc.Get(context.Background(), entity.Identity{AccountID: "U"}, "missing")
	de, _ = AsDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, CodeLeadNotFound, de.Code)
}

func TestLeadQuery_ListMineNeverNil(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("ListByUser", mock.Anything, "U").Return(nil, nil)

	got, err := NewLeadQueryUseCase(leads, newFakeScheduler(), zap.NewNop()).
		ListMine(context.Background(), entity.Identity{AccountID: "U"})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLeadQuery_DeleteCancelsPendingInvitation(t *testing.T) {
	lead := leadOwnedBy("U", false)
	leads := new(MockLeadRepository)
	scheduler := newFakeScheduler()
	scheduler.Schedule(lead.ID, 0, func(context.Context) { t.Fatal("invitation should have been cancelled") })

	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)
	leads.On("Delete", mock.Anything, lead.ID).Return(nil)

	err := NewLeadQueryUseCase(leads, scheduler, zap.NewNop()).
		Delete(context.Background(), entity.Identity{AccountID: "U"}, lead.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{lead.ID}, scheduler.cancelled)
	assert.False(t, scheduler.Fire(lead.ID))
}

func TestLeadQuery_DeleteForbidden(t *testing.T) {
	lead := leadOwnedBy("U", false)
	leads := new(MockLeadRepository)
	scheduler := newFakeScheduler()
	leads.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	err := NewLeadQueryUseCase(leads, scheduler, zap.NewNop()).
		Delete(context.Background(), entity.Identity{AccountID: "V"}, lead.ID)

	assert.True(t, IsDomainError(err))
	assert.Empty(t, scheduler.cancelled)
	leads.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminReport_SalesPeople(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("ListSalesPeople", mock.Anything).Return([]entity.SalesPerson{
		{ID: "1", Name: "Maria", Email: "m@x.com", CustomerCount: 2},
	}, nil)

	got, err := NewAdminReportUseCase(accounts, new(MockLeadRepository), new(MockReplyRepository)).
		SalesPeople(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].CustomerCount)
}

func TestAdminReport_LeadsOfUnknownAccount(t *testing.T) {
	accounts := new(MockAccountRepository)
	leads := new(MockLeadRepository)
	accounts.On("FindByID", mock.Anything, "nobody").Return(nil, entity.ErrAccountNotFound)

	_, err := NewAdminReportUseCase(accounts, leads, new(MockReplyRepository)).
		LeadsOf(context.Background(), "nobody")

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, CodeAccountNotFound, de.Code)
	leads.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestAdminReport_InboundRepliesClampsLimit(t *testing.T) {
	replies := new(MockReplyRepository)
	replies.On("List", mock.Anything, defaultInboundLimit).Return([]*entity.InboundReply{}, nil)
	replies.On("List", mock.Anything, 5).Return(nil, errors.New("boom"))

	uc := NewAdminReportUseCase(new(MockAccountRepository), new(MockLeadRepository), replies)

	got, err := uc.InboundReplies(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = uc.InboundReplies(context.Background(), 5000)
	require.NoError(t, err)

	_, err = uc.InboundReplies(context.Background(), 5)
	assert.True(t, IsTechnicalError(err))
}
