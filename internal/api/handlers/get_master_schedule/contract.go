package get_master_schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/masters/models"
)

type MastersService interface {
	GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
