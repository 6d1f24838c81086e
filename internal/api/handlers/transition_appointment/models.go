package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string  `json:"status"` // confirmed, completed, no_show или cancelled
	Reason *string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	MasterID           int64   `json:"masterId"`
	ServiceID          int64   `json:"serviceId"`
	StartAt            string  `json:"startAt"` // RFC3339
	EndAt              string  `json:"endAt"`   // RFC3339
	Status             string  `json:"status"`
	PreviousStatus     string  `json:"previousStatus"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(appointmentID, actorID int64, role domain.Role) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		ActorID:       actorID,
		ActorRole:     role,
		TargetStatus:  r.Status,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *transitionAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		MasterID:           resp.MasterID,
		ServiceID:          resp.ServiceID,
		StartAt:            resp.StartAt.Format(time.RFC3339),
		EndAt:              resp.EndAt.Format(time.RFC3339),
		Status:             resp.Status,
		PreviousStatus:     resp.PreviousStatus,
		CancellationReason: resp.CancellationReason,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
