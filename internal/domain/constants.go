package domain

// Default scheduling policy values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultMinLeadTimeMinutes     = 60
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxTimeOffReasonLength      = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, занимающие календарь мастера
// Используются при подсчете пересечений и в partial-индексе БД
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы, освобождающие календарь
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByOperator,
	StatusNoShow,
}
