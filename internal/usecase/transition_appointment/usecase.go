package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepository AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepository,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса.
// Текущий статус читается с блокировкой внутри сериализуемой транзакции,
// чтобы конкурирующие переходы не перезаписали друг друга.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, actor=%d, role=%s, target=%s",
		req.AppointmentID, req.ActorID, req.ActorRole, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем обобщенную цель в конкретный статус по роли
	target, err := resolveTargetStatus(req.TargetStatus, req.ActorRole)
	if err != nil {
		uc.logger.Warn("TransitionAppointment: target resolution failed: %v", err)
		return nil, err
	}

	var (
		result     *domain.Appointment
		prevStatus domain.AppointmentStatus
	)

	// 3. Выполняем переход в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем запись с блокировкой (FOR UPDATE)
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("TransitionAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrStoreUnavailable, err)
		}

		// 3.2. Проверяем права действующего лица
		if err := checkPermission(current, req.ActorID, req.ActorRole, target); err != nil {
			uc.logger.Warn("TransitionAppointment: actor=%d role=%s denied for appointment id=%d",
				req.ActorID, req.ActorRole, current.ID)
			return err
		}

		// 3.3. Проверяем переход по закрытой таблице
		if !domain.CanTransition(current.Status, target) {
			uc.logger.Warn("TransitionAppointment: transition %s -> %s is not allowed for appointment id=%d",
				current.Status, target, current.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
		}

		prevStatus = current.Status

		// 3.4. Применяем новый статус
		if err := uc.appointmentRepo.UpdateStatus(txCtx, current.ID, target, req.Reason); err != nil {
			uc.logger.Error("TransitionAppointment: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrStoreUnavailable, err)
		}

		// 3.5. Фиксируем переход в истории
		if err := uc.appointmentRepo.AddStatusHistory(txCtx, current.ID, target, req.ActorID, req.Reason); err != nil {
			uc.logger.Error("TransitionAppointment: failed to add status history: %v", err)
			return fmt.Errorf("%w: failed to add status history: %v", ErrStoreUnavailable, err)
		}

		// 3.6. Перечитываем запись после обновления
		updated, err := uc.appointmentRepo.GetByID(txCtx, current.ID)
		if err != nil {
			uc.logger.Error("TransitionAppointment: failed to reload appointment: %v", err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrStoreUnavailable, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionAppointment: appointment id=%d moved %s -> %s",
		result.ID, prevStatus, result.Status)

	// 4. Публикуем событие после коммита; ошибки публикации не влияют на результат
	if uc.notifier != nil {
		uc.notifier.AppointmentTransitioned(result, prevStatus)
	}

	return &Response{
		ID:                 result.ID,
		ClientID:           result.ClientID,
		MasterID:           result.MasterID,
		ServiceID:          result.ServiceID,
		StartAt:            result.StartAt,
		EndAt:              result.EndAt,
		Status:             string(result.Status),
		PreviousStatus:     string(prevStatus),
		CancellationReason: result.CancellationReason,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// resolveTargetStatus переводит цель запроса в конкретный статус.
// Обобщенная цель "cancelled" разрешается по роли действующего лица.
func resolveTargetStatus(target string, role domain.Role) (domain.AppointmentStatus, error) {
	switch target {
	case TargetCancelled:
		if role == domain.RoleOperator {
			return domain.StatusCancelledByOperator, nil
		}
		return domain.StatusCancelledByClient, nil
	case string(domain.StatusConfirmed):
		return domain.StatusConfirmed, nil
	case string(domain.StatusCompleted):
		return domain.StatusCompleted, nil
	case string(domain.StatusNoShow):
		return domain.StatusNoShow, nil
	default:
		return "", fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, target)
	}
}

// checkPermission проверяет права действующего лица на переход.
// Клиент может только отменить собственную запись; оператору доступны все переходы.
func checkPermission(a *domain.Appointment, actorID int64, role domain.Role, target domain.AppointmentStatus) error {
	if role == domain.RoleOperator {
		return nil
	}

	if a.ClientID != actorID {
		return ErrForbidden
	}

	if target != domain.StatusCancelledByClient {
		return ErrForbidden
	}

	return nil
}
