package domain

import "time"

// AppointmentStatus статус записи к мастеру
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByOperator AppointmentStatus = "cancelled_by_operator"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment запись клиента к мастеру на услугу
// Занимает полуинтервал [StartAt, EndAt) в календаре мастера
type Appointment struct {
	ID              int64
	MasterID        int64
	ServiceID       int64
	ClientID        int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying возвращает true, если запись занимает календарь мастера
// Отмененные записи и no-show календарь не занимают
func (a *Appointment) IsOccupying() bool {
	return a.Status.IsOccupying()
}

// IsCancelled возвращает true, если запись отменена
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByOperator
}

// Overlaps возвращает true, если интервалы записей действительно пересекаются
// Граничащие интервалы (конец одной = начало другой) пересечением не считаются
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && start.Before(a.EndAt)
}

// IsOccupying возвращает true для статусов, занимающих календарь
func (s AppointmentStatus) IsOccupying() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	default:
		return false
	}
}

// Valid возвращает true для известного статуса
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByOperator, StatusNoShow:
		return true
	default:
		return false
	}
}

// StatusHistoryEntry запись в истории смены статусов
type StatusHistoryEntry struct {
	ID            int64
	AppointmentID int64
	Status        AppointmentStatus
	ChangedBy     int64
	Reason        *string
	CreatedAt     time.Time
}
