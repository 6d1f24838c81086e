package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	IsMasterQualified(ctx context.Context, serviceID, masterID int64) (bool, error)
}

// MasterRepository интерфейс репозитория графиков мастеров
type MasterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	GetWeeklyTemplate(ctx context.Context, masterID int64) (domain.WeeklyTemplate, error)
	GetUnavailability(ctx context.Context, masterID int64, from, to time.Time) ([]domain.Unavailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByMasterAndRange(ctx context.Context, masterID int64, from, to time.Time, occupyingOnly bool) ([]*domain.Appointment, error)
	AddStatusHistory(ctx context.Context, appointmentID int64, status domain.AppointmentStatus, changedBy int64, reason *string) error
}

// TransactionManager интерфейс менеджера сериализуемых транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий записи.
// Реализация не должна блокировать и не должна влиять на результат операции.
type Notifier interface {
	AppointmentCreated(a *domain.Appointment)
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
