package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStage(t *testing.T) {
	tests := []struct {
		status     NotificationStatus
		interested bool
		want       LeadStage
	}{
		{NotificationSubmitted, false, StageSubmitted},
		{NotificationPending, false, StageNotificationPending},
		{NotificationSent, false, StageNotificationSent},
		{NotificationSent, true, StageConfirmed},
	}

	for _, tt := range tests {
		lead := &Lead{NotificationStatus: tt.status, Interested: tt.interested}
		assert.Equal(t, tt.want, lead.Stage(), "%s interested=%v", tt.status, tt.interested)
	}
}

func TestLeadJSONCarriesStage(t *testing.T) {
	lead := NewLead("user-1", "Ana", 30, "Bakery", "Lima", "ana@x.com")
	lead.NotificationStatus = NotificationPending

	raw, err := json.Marshal(lead)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "NotificationPending", got["stage"])
	assert.Equal(t, lead.ID, got["id"])
	assert.Equal(t, "user-1", got["userId"])
	assert.Equal(t, false, got["interested"])
	assert.Equal(t, "Bakery", got["businessType"])

	var back Lead
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, lead.ID, back.ID)
}
