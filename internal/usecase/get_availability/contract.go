package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetQualifiedMasters(ctx context.Context, serviceID int64) ([]*domain.Master, error)
}

// MasterRepository интерфейс репозитория графиков мастеров
type MasterRepository interface {
	GetWeeklyTemplate(ctx context.Context, masterID int64) (domain.WeeklyTemplate, error)
	GetUnavailability(ctx context.Context, masterID int64, from, to time.Time) ([]domain.Unavailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByMasterAndRange(ctx context.Context, masterID int64, from, to time.Time, occupyingOnly bool) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
