package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvitation_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    Status
		expiresAt time.Time
		want      Status
	}{
		{"pending before expiry reads pending", StatusPending, now.Add(time.Hour), StatusPending},
		{"pending at the expiry instant reads expired", StatusPending, now, StatusExpired},
		{"pending past expiry reads expired", StatusPending, now.Add(-time.Hour), StatusExpired},
		{"accepted never reads expired", StatusAccepted, now.Add(-time.Hour), StatusAccepted},
		{"cancelled never reads expired", StatusCancelled, now.Add(-time.Hour), StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invitation{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, inv.EffectiveStatus(now))
		})
	}
}

func TestInvitation_IsTerminal(t *testing.T) {
	assert.False(t, (&Invitation{Status: StatusPending}).IsTerminal())
	assert.True(t, (&Invitation{Status: StatusAccepted}).IsTerminal())
	assert.True(t, (&Invitation{Status: StatusCancelled}).IsTerminal())
}
