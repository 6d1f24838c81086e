package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// TargetCancelled обобщенная цель отмены: конкретный статус
// (cancelled_by_client или cancelled_by_operator) выбирается по роли
const TargetCancelled = "cancelled"

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64
	ActorID       int64       // ID действующего лица (из заголовков аутентификации)
	ActorRole     domain.Role // client или operator
	TargetStatus  string      // confirmed, completed, no_show или cancelled
	Reason        *string     // Причина отмены (опционально)
}

// Response модель ответа с обновленной записью
type Response struct {
	ID                 int64
	ClientID           int64
	MasterID           int64
	ServiceID          int64
	StartAt            time.Time
	EndAt              time.Time
	Status             string
	PreviousStatus     string
	CancellationReason *string
	UpdatedAt          time.Time
}
