package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct{ closed bool }

func (c fakeConn) IsClosed() bool { return c.closed }

type fakePending int

func (p fakePending) Pending() int { return int(p) }

func TestHealthHandler(t *testing.T) {
	ok := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("refused") })

	tests := []struct {
		name     string
		handler  *HealthHandler
		status   int
		overall  string
		rabbitmq string
	}{
		{"all healthy", NewHealthHandler(ok, fakeConn{}, ok, fakePending(2)), http.StatusOK, "healthy", "healthy"},
		{"optional deps absent", NewHealthHandler(ok, nil, nil, fakePending(0)), http.StatusOK, "healthy", "not configured"},
		{"database down", NewHealthHandler(down, nil, nil, fakePending(0)), http.StatusServiceUnavailable, "degraded", "not configured"},
		{"broker closed", NewHealthHandler(ok, fakeConn{closed: true}, nil, nil), http.StatusServiceUnavailable, "degraded", "unhealthy: connection closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.overall, resp.Status)
			assert.Equal(t, tt.rabbitmq, resp.Dependencies["rabbitmq"])
		})
	}
}

func TestHealthReportsPendingSends(t *testing.T) {
	h := NewHealthHandler(PingFunc(func(ctx context.Context) error { return nil }), nil, nil, fakePending(3))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.PendingSends)
}
