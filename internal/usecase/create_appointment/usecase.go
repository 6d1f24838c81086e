package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	masterRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/master"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	serviceRepo     ServiceRepository
	masterRepo      MasterRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	policy          domain.SchedulingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepository ServiceRepository,
	masterRepository MasterRepository,
	appointmentRepository AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	policy domain.SchedulingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		masterRepo:      masterRepository,
		appointmentRepo: appointmentRepository,
		txManager:       txManager,
		notifier:        notifier,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Все проверки доступности повторяются внутри сериализуемой транзакции:
// снимок, который видел клиент при выборе слота, к этому моменту мог устареть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, master=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	// 4. Валидация даты с учетом политики
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 5. Проверяем квалификацию мастера
	qualified, err := uc.serviceRepo.IsMasterQualified(ctx, req.ServiceID, req.MasterID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check qualification master=%d service=%d: %v",
			req.MasterID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to check qualification: %v", ErrStoreUnavailable, err)
	}
	if !qualified {
		uc.logger.Warn("CreateAppointment: master id=%d is not qualified for service id=%d",
			req.MasterID, req.ServiceID)
		return nil, ErrIneligibleMaster
	}

	// 6. Получаем мастера и его таймзону
	master, err := uc.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			uc.logger.Warn("CreateAppointment: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrStoreUnavailable, err)
	}

	loc, err := master.Location()
	if err != nil {
		uc.logger.Error("CreateAppointment: master id=%d has invalid timezone %q: %v", master.ID, master.Timezone, err)
		return nil, fmt.Errorf("%w: invalid master timezone: %v", ErrStoreUnavailable, err)
	}

	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	dayStart, dayEnd := schedule.DayBounds(req.Date, loc)
	startAt := dayStart.Add(time.Duration(startMinute) * time.Minute)
	endAt := startAt.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// 7. Проверяем lead time
	if startAt.Before(now.Add(time.Duration(uc.policy.MinLeadTimeMinutes) * time.Minute)) {
		uc.logger.Warn("CreateAppointment: start %s violates lead time of %d minutes",
			startAt.Format(time.RFC3339), uc.policy.MinLeadTimeMinutes)
		return nil, ErrTooLateToBook
	}

	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Пересчитываем рабочие интервалы внутри транзакции
		tpl, err := uc.masterRepo.GetWeeklyTemplate(txCtx, req.MasterID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get weekly template: %v", err)
			return fmt.Errorf("%w: failed to get weekly template: %v", ErrStoreUnavailable, err)
		}

		windows, err := uc.masterRepo.GetUnavailability(txCtx, req.MasterID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get unavailability: %v", err)
			return fmt.Errorf("%w: failed to get unavailability: %v", ErrStoreUnavailable, err)
		}

		open, err := schedule.OpenIntervals(tpl, windows, req.Date, loc)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to compute open intervals: %v", err)
			return fmt.Errorf("%w: failed to compute open intervals: %v", ErrStoreUnavailable, err)
		}

		// 8.2. Слот обязан целиком помещаться в один открытый интервал
		// и лежать на сетке слотов этого интервала
		if !validSlotStart(open, startMinute, svc.DurationMinutes, uc.policy.SlotGranularityMinutes) {
			uc.logger.Warn("CreateAppointment: slot %s+%dm is outside master=%d availability",
				req.StartTime, svc.DurationMinutes, req.MasterID)
			return ErrOutsideAvailability
		}

		// 8.3. Читаем занимающие записи дня с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByMasterAndRange(txCtx, req.MasterID, dayStart, dayEnd, true)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrStoreUnavailable, err)
		}

		for _, a := range appointments {
			if a.Overlaps(startAt, endAt) {
				uc.logger.Warn("CreateAppointment: slot conflicts with appointment id=%d", a.ID)
				return ErrSlotConflict
			}
		}

		// 8.4. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			MasterID:        req.MasterID,
			ServiceID:       req.ServiceID,
			ClientID:        req.ClientID,
			StartAt:         startAt,
			EndAt:           endAt,
			DurationMinutes: svc.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     svc.Name,
			ServicePrice:    svc.FinalPrice(),
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				// Страховка на уровне БД: exclusion constraint по диапазону времени
				uc.logger.Warn("CreateAppointment: exclusion constraint rejected slot for master=%d", req.MasterID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrStoreUnavailable, err)
		}

		// 8.5. Фиксируем начальный статус в истории
		if err := uc.appointmentRepo.AddStatusHistory(txCtx, created.ID, domain.StatusPending, req.ClientID, nil); err != nil {
			uc.logger.Error("CreateAppointment: failed to add status history: %v", err)
			return fmt.Errorf("%w: failed to add status history: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 9. Публикуем событие после коммита; ошибки публикации не влияют на результат
	if uc.notifier != nil {
		uc.notifier.AppointmentCreated(result)
	}

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		MasterID:        result.MasterID,
		ServiceID:       result.ServiceID,
		StartAt:         result.StartAt,
		EndAt:           result.EndAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// validSlotStart проверяет, что слот целиком лежит в одном открытом интервале
// и его начало попадает на сетку слотов, отсчитанную от начала интервала
func validSlotStart(open []schedule.Interval, start, durationMinutes, granularityMinutes int) bool {
	for _, iv := range open {
		if start < iv.Start || start+durationMinutes > iv.End {
			continue
		}
		return (start-iv.Start)%granularityMinutes == 0
	}
	return false
}
