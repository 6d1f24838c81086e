package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled by client", StatusPending, StatusCancelledByClient, true},
		{"pending to cancelled by operator", StatusPending, StatusCancelledByOperator, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"pending to no_show", StatusPending, StatusNoShow, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelledByOperator, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
		{"cancelled by client is terminal", StatusCancelledByClient, StatusPending, false},
		{"cancelled by operator is terminal", StatusCancelledByOperator, StatusConfirmed, false},
		{"self transition is not allowed", StatusConfirmed, StatusConfirmed, false},
		{"unknown status has no transitions", AppointmentStatus("archived"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointmentStatus_IsOccupying(t *testing.T) {
	for _, status := range OccupyingStatuses {
		assert.True(t, status.IsOccupying(), "status %s", status)
	}
	for _, status := range InactiveStatuses {
		assert.False(t, status.IsOccupying(), "status %s", status)
	}
}

func TestAppointment_Overlaps(t *testing.T) {
	a := &Appointment{
		StartAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	}

	// Частичное пересечение
	assert.True(t, a.Overlaps(
		time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC),
	))

	// Смежные интервалы не пересекаются
	assert.False(t, a.Overlaps(
		time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	))
	assert.False(t, a.Overlaps(
		time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	))

	// Полное поглощение
	assert.True(t, a.Overlaps(
		time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	))
}
