package notifier

import "time"

// Типы публикуемых событий
const (
	EventAppointmentCreated      = "appointment.created"
	EventAppointmentTransitioned = "appointment.transitioned"
)

// Event событие жизненного цикла записи для внешних потребителей
// (диспетчер уведомлений, админ-календарь)
type Event struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	AppointmentID int64     `json:"appointmentId"`
	MasterID      int64     `json:"masterId"`
	ServiceID     int64     `json:"serviceId"`
	ClientID      int64     `json:"clientId"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	PrevStatus    *string   `json:"prevStatus,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
