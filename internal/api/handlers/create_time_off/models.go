package create_time_off

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/masters/models"
)

// CreateTimeOffRequest HTTP request model
type CreateTimeOffRequest struct {
	StartAt     string  `json:"startAt"`               // RFC3339
	EndAt       string  `json:"endAt"`                 // RFC3339
	Reason      *string `json:"reason,omitempty"`      // Причина (опционально)
	RepeatUntil *string `json:"repeatUntil,omitempty"` // "2026-06-01", еженедельный повтор
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTimeOffRequest) ToServiceRequest(masterID int64) (*models.CreateTimeOffRequest, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	req := &models.CreateTimeOffRequest{
		MasterID: masterID,
		StartAt:  startAt,
		EndAt:    endAt,
		Reason:   r.Reason,
	}

	if r.RepeatUntil != nil {
		until, err := time.Parse(domain.DateFormat, *r.RepeatUntil)
		if err != nil {
			return nil, err
		}
		req.RepeatUntil = &until
	}

	return req, nil
}
