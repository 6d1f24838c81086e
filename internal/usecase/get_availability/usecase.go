package get_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case получения доступных слотов по услуге и дате.
// Только чтение: результат - best-effort снимок, create_appointment
// перепроверяет все условия заново внутри транзакции.
type UseCase struct {
	serviceRepo     ServiceRepository
	masterRepo      MasterRepository
	appointmentRepo AppointmentRepository
	policy          domain.SchedulingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepository ServiceRepository,
	masterRepository MasterRepository,
	appointmentRepository AppointmentRepository,
	policy domain.SchedulingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		masterRepo:      masterRepository,
		appointmentRepo: appointmentRepository,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, date=%s, master=%v",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.MasterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время берем из провайдера, а не из time.Now
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	// 4. Валидация даты с учетом политики
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 5. Определяем пул мастеров
	masters, err := uc.eligibleMasters(ctx, req)
	if err != nil {
		return nil, err
	}

	// 6. Считаем слоты каждого мастера и объединяем:
	// для каждого времени старта собирается список мастеров, способных его взять
	merged := make(map[int][]int64)
	masterInfos := make([]MasterInfo, 0, len(masters))

	for _, m := range masters {
		loc, err := m.Location()
		if err != nil {
			// Некорректная таймзона - ошибка данных; мастер исключается
			// и из слотов, и из справочника мастеров ответа
			uc.logger.Error("GetAvailability: master id=%d has invalid timezone %q: %v", m.ID, m.Timezone, err)
			continue
		}

		starts, err := uc.masterSlots(ctx, m, svc, req, now, loc)
		if err != nil {
			return nil, err
		}
		masterInfos = append(masterInfos, MasterInfo{ID: m.ID, Name: m.Name})
		for _, start := range starts {
			merged[start] = append(merged[start], m.ID)
		}
	}

	slots, err := buildSlots(merged, svc.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: %d slots across %d masters for service=%d, date=%s",
		len(slots), len(masters), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     slots,
		Masters:   masterInfos,
	}, nil
}

// eligibleMasters возвращает пул мастеров для расчета.
// При явно указанном мастере пул сужается до него; если он не выполняет
// услугу - ErrInvalidSelection.
func (uc *UseCase) eligibleMasters(ctx context.Context, req *Request) ([]*domain.Master, error) {
	masters, err := uc.serviceRepo.GetQualifiedMasters(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get qualified masters for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get qualified masters: %v", ErrStoreUnavailable, err)
	}

	if req.MasterID == nil {
		return masters, nil
	}

	for _, m := range masters {
		if m.ID == *req.MasterID {
			return []*domain.Master{m}, nil
		}
	}

	uc.logger.Warn("GetAvailability: master id=%d is not qualified for service id=%d", *req.MasterID, req.ServiceID)
	return nil, ErrInvalidSelection
}

// masterSlots вычисляет старты слотов одного мастера (минуты от начала дня)
func (uc *UseCase) masterSlots(ctx context.Context, m *domain.Master, svc *domain.Service, req *Request, now time.Time, loc *time.Location) ([]int, error) {
	dayStart, dayEnd := schedule.DayBounds(req.Date, loc)

	tpl, err := uc.masterRepo.GetWeeklyTemplate(ctx, m.ID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get weekly template for master=%d: %v", m.ID, err)
		return nil, fmt.Errorf("%w: failed to get weekly template: %v", ErrStoreUnavailable, err)
	}

	windows, err := uc.masterRepo.GetUnavailability(ctx, m.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get unavailability for master=%d: %v", m.ID, err)
		return nil, fmt.Errorf("%w: failed to get unavailability: %v", ErrStoreUnavailable, err)
	}

	open, err := schedule.OpenIntervals(tpl, windows, req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to compute open intervals for master=%d: %v", m.ID, err)
		return nil, fmt.Errorf("%w: failed to compute open intervals: %v", ErrStoreUnavailable, err)
	}

	appointments, err := uc.appointmentRepo.GetByMasterAndRange(ctx, m.ID, dayStart, dayEnd, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for master=%d: %v", m.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrStoreUnavailable, err)
	}

	dayMinutes := schedule.MinutesInDay(req.Date, loc)
	busy := schedule.BusyFromAppointments(appointments, dayStart, dayMinutes)

	return schedule.GenerateSlots(
		open,
		svc.DurationMinutes,
		uc.policy.SlotGranularityMinutes,
		busy,
		cutoffMinute(req.Date, now, loc, uc.policy.MinLeadTimeMinutes),
	), nil
}

// buildSlots сортирует объединенные слоты по времени начала
func buildSlots(merged map[int][]int64, durationMinutes int) ([]domain.AvailableSlot, error) {
	starts := make([]int, 0, len(merged))
	for start := range merged {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	slots := make([]domain.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		ts, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, fmt.Errorf("%w: slot start out of range: %v", ErrInvalidInput, err)
		}
		ids := merged[start]
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		slots = append(slots, domain.AvailableSlot{
			StartTime:       ts,
			DurationMinutes: durationMinutes,
			MasterIDs:       ids,
		})
	}
	return slots, nil
}
