package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// GetDayScheduleRequest запрос на получение графика мастера за день
type GetDayScheduleRequest struct {
	MasterID int64     `json:"masterId"`
	Date     time.Time `json:"date"`
}

// CreateTimeOffRequest запрос на создание окна недоступности мастера
type CreateTimeOffRequest struct {
	MasterID    int64      `json:"masterId"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       time.Time  `json:"endAt"`
	Reason      *string    `json:"reason,omitempty"`
	RepeatUntil *time.Time `json:"repeatUntil,omitempty"` // Еженедельный повтор до даты включительно
}

// Response модели

// IntervalResponse открытый интервал рабочего дня
type IntervalResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "12:00"
}

// AppointmentSlotResponse занятый отрезок дня
type AppointmentSlotResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	StartAt       string `json:"startAt"` // RFC3339
	EndAt         string `json:"endAt"`   // RFC3339
	Status        string `json:"status"`
	ServiceName   string `json:"serviceName"`
}

// DayScheduleResponse график мастера на день для операторского календаря
type DayScheduleResponse struct {
	MasterID      int64                      `json:"masterId"`
	Date          string                     `json:"date"` // "2026-03-10"
	Timezone      string                     `json:"timezone"`
	OpenIntervals []IntervalResponse         `json:"openIntervals"`
	Appointments  []*AppointmentSlotResponse `json:"appointments"`
}

// TimeOffResponse ответ с созданным окном недоступности
type TimeOffResponse struct {
	ID          int64   `json:"id"`
	MasterID    int64   `json:"masterId"`
	StartAt     string  `json:"startAt"` // RFC3339
	EndAt       string  `json:"endAt"`   // RFC3339
	Reason      *string `json:"reason,omitempty"`
	RepeatUntil *string `json:"repeatUntil,omitempty"` // "2026-06-01"
	CreatedAt   string  `json:"createdAt"`
}

// FromDomainIntervals конвертирует минутные интервалы в response
func FromDomainIntervals(intervals []schedule.Interval) ([]IntervalResponse, error) {
	out := make([]IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		start, err := types.NewTimeStringFromMinutes(iv.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(iv.End)
		if err != nil {
			return nil, err
		}
		out = append(out, IntervalResponse{Start: start.String(), End: end.String()})
	}
	return out, nil
}

// FromDomainAppointmentSlots конвертирует записи дня в response
func FromDomainAppointmentSlots(appointments []*domain.Appointment) []*AppointmentSlotResponse {
	out := make([]*AppointmentSlotResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, &AppointmentSlotResponse{
			AppointmentID: a.ID,
			StartAt:       a.StartAt.Format(time.RFC3339),
			EndAt:         a.EndAt.Format(time.RFC3339),
			Status:        string(a.Status),
			ServiceName:   a.ServiceName,
		})
	}
	return out
}

// FromDomainUnavailability конвертирует окно недоступности в response
func FromDomainUnavailability(w *domain.Unavailability) *TimeOffResponse {
	resp := &TimeOffResponse{
		ID:        w.ID,
		MasterID:  w.MasterID,
		StartAt:   w.StartAt.Format(time.RFC3339),
		EndAt:     w.EndAt.Format(time.RFC3339),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
	if w.Reason != "" {
		reason := w.Reason
		resp.Reason = &reason
	}
	if w.RepeatUntil != nil {
		until := w.RepeatUntil.Format(domain.DateFormat)
		resp.RepeatUntil = &until
	}
	return resp
}
