package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTurn_StateTransitions(t *testing.T) {
	tests := []struct {
		status       TurnStatus
		canConfirm   bool
		canCancel    bool
		active       bool
		wasCancelled bool
	}{
		{status: StatusPending, canConfirm: true, canCancel: true, active: true, wasCancelled: false},
		{status: StatusConfirmed, canConfirm: false, canCancel: true, active: true, wasCancelled: false},
		{status: StatusCancelled, canConfirm: false, canCancel: false, active: false, wasCancelled: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			turn := &Turn{Status: tt.status}

			assert.Equal(t, tt.canConfirm, turn.CanBeConfirmed())
			assert.Equal(t, tt.canCancel, turn.CanBeCancelled())
			assert.Equal(t, tt.active, turn.IsActive())
			assert.Equal(t, tt.wasCancelled, turn.IsCancelled())
		})
	}
}

func TestAvailabilitySlot_DurationMinutes(t *testing.T) {
	slot := &AvailabilitySlot{StartTime: "10:00", EndTime: "12:30"}
	assert.Equal(t, 150, slot.DurationMinutes())

	broken := &AvailabilitySlot{StartTime: "bad", EndTime: "12:00"}
	assert.Equal(t, 0, broken.DurationMinutes())
}

func TestAvailabilitySlot_MatchesDate(t *testing.T) {
	slot := &AvailabilitySlot{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, slot.MatchesDate(time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)))
	assert.False(t, slot.MatchesDate(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}
