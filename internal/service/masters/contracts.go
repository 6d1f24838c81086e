package masters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// MasterRepository интерфейс репозитория графиков мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	GetWeeklyTemplate(ctx context.Context, masterID int64) (domain.WeeklyTemplate, error)
	GetUnavailability(ctx context.Context, masterID int64, from, to time.Time) ([]domain.Unavailability, error)
	CreateUnavailability(ctx context.Context, w *domain.Unavailability) (*domain.Unavailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByMasterAndRange(ctx context.Context, masterID int64, from, to time.Time, occupyingOnly bool) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
