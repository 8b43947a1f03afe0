package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

func newAdminHandler(accounts *MockAccountRepository, leads *MockLeadRepository, replies *MockReplyRepository) *AdminHandler {
	return NewAdminHandler(usecase.NewAdminReportUseCase(accounts, leads, replies), zap.NewNop())
}

func TestAdminSalesPeople(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("ListSalesPeople", mock.Anything).Return([]entity.SalesPerson{
		{ID: "user-1", Name: "Sam", Email: "sam@x.com", CustomerCount: 2},
	}, nil)
	h := newAdminHandler(accounts, new(MockLeadRepository), new(MockReplyRepository))

	rec := serve(http.MethodGet, "/admin/users", "/admin/users", nil, &admin, h.SalesPeople)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"user-1","name":"Sam","email":"sam@x.com","customerCount":2}]`, rec.Body.String())
}

func TestAdminLeadsOfUnknownAccount(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrAccountNotFound)
	h := newAdminHandler(accounts, new(MockLeadRepository), new(MockReplyRepository))

	rec := serve(http.MethodGet, "/admin/users/{userId}/customers", "/admin/users/ghost/customers", nil, &admin, h.LeadsOf)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, usecase.CodeAccountNotFound, decodeError(t, rec.Body.Bytes()).Error)
}

func TestAdminLeadsOf(t *testing.T) {
	accounts := new(MockAccountRepository)
	leads := new(MockLeadRepository)
	accounts.On("FindByID", mock.Anything, "user-1").Return(&entity.Account{ID: "user-1"}, nil)
	leads.On("ListByUser", mock.Anything, "user-1").Return([]*entity.Lead{ownedLead("lead-1", "user-1", true)}, nil)
	h := newAdminHandler(accounts, leads, new(MockReplyRepository))

	rec := serve(http.MethodGet, "/admin/users/{userId}/customers", "/admin/users/user-1/customers", nil, &admin, h.LeadsOf)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].Interested)
}

func TestAdminInboundRepliesClampsLimit(t *testing.T) {
	replies := new(MockReplyRepository)
	replies.On("List", mock.Anything, 100).Return([]*entity.InboundReply{}, nil)
	replies.On("List", mock.Anything, 5).Return([]*entity.InboundReply{{ID: "r1", Sender: "ana@x.com"}}, nil)
	h := newAdminHandler(new(MockAccountRepository), new(MockLeadRepository), replies)

	rec := serve(http.MethodGet, "/incoming-emails", "/incoming-emails?limit=5000", nil, &admin, h.InboundReplies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(http.MethodGet, "/incoming-emails", "/incoming-emails?limit=5", nil, &admin, h.InboundReplies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sender":"ana@x.com"`)
}

func TestUsersDirectoryOmitsCounts(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("ListSalesPeople", mock.Anything).Return([]entity.SalesPerson{
		{ID: "user-1", Name: "Sam", Email: "sam@x.com", CustomerCount: 7},
	}, nil)
	h := newAdminHandler(accounts, new(MockLeadRepository), new(MockReplyRepository))

	rec := serve(http.MethodGet, "/users", "/users", nil, &salesperson, h.Users)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"user-1","name":"Sam","email":"sam@x.com"}]`, rec.Body.String())
}
