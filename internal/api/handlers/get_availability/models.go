package get_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	MasterIDs       []int64 `json:"masterIds"`
}

// MasterResponse HTTP модель мастера
type MasterResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID int64            `json:"serviceId"`
	Date      string           `json:"date"` // "2026-03-10"
	Slots     []SlotResponse   `json:"slots"`
	Masters   []MasterResponse `json:"masters"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			MasterIDs:       s.MasterIDs,
		})
	}

	masters := make([]MasterResponse, 0, len(resp.Masters))
	for _, m := range resp.Masters {
		masters = append(masters, MasterResponse{ID: m.ID, Name: m.Name})
	}

	return &AvailableSlotsResponse{
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
		Masters:   masters,
	}
}
