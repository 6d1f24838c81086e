package masters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	masterRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/master"
	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/masters/models"
)

// Service сервис для работы с графиками мастеров
type Service struct {
	masterRepo      MasterRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса графиков
func NewService(
	masterRepo MasterRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		masterRepo:      masterRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetDaySchedule возвращает открытые интервалы и записи мастера на день.
// Используется операторским календарем: отмененные записи тоже включаются.
func (s *Service) GetDaySchedule(ctx context.Context, req *models.GetDayScheduleRequest) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDaySchedule: master=%d, date=%s", req.MasterID, req.Date.Format(domain.DateFormat))

	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: master ID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	master, err := s.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("GetDaySchedule: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		s.logger.Error("GetDaySchedule: repository error for master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	loc, err := master.Location()
	if err != nil {
		s.logger.Error("GetDaySchedule: master id=%d has invalid timezone %q: %v", master.ID, master.Timezone, err)
		return nil, fmt.Errorf("%w: invalid master timezone: %v", ErrInternal, err)
	}

	dayStart, dayEnd := schedule.DayBounds(req.Date, loc)

	tpl, err := s.masterRepo.GetWeeklyTemplate(ctx, req.MasterID)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get weekly template for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get weekly template: %v", ErrInternal, err)
	}

	windows, err := s.masterRepo.GetUnavailability(ctx, req.MasterID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get unavailability for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get unavailability: %v", ErrInternal, err)
	}

	open, err := schedule.OpenIntervals(tpl, windows, req.Date, loc)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to compute open intervals for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to compute open intervals: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.GetByMasterAndRange(ctx, req.MasterID, dayStart, dayEnd, false)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to get appointments for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	openResp, err := models.FromDomainIntervals(open)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to convert intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to convert intervals: %v", ErrInternal, err)
	}

	s.logger.Info("GetDaySchedule: master=%d has %d open intervals and %d appointments on %s",
		req.MasterID, len(open), len(appointments), req.Date.Format(domain.DateFormat))

	return &models.DayScheduleResponse{
		MasterID:      master.ID,
		Date:          req.Date.Format(domain.DateFormat),
		Timezone:      master.Timezone,
		OpenIntervals: openResp,
		Appointments:  models.FromDomainAppointmentSlots(appointments),
	}, nil
}

// CreateTimeOff создает окно недоступности мастера.
// Уже существующие записи, попадающие в окно, не отменяются автоматически:
// оператор разбирает их вручную через операторский календарь.
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: master=%d, from=%s, to=%s",
		req.MasterID, req.StartAt.Format(domain.DateFormat), req.EndAt.Format(domain.DateFormat))

	if err := validateTimeOffRequest(req); err != nil {
		s.logger.Warn("CreateTimeOff: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.masterRepo.GetByID(ctx, req.MasterID); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("CreateTimeOff: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		s.logger.Error("CreateTimeOff: repository error for master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	window := &domain.Unavailability{
		MasterID:    req.MasterID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		RepeatUntil: req.RepeatUntil,
	}
	if req.Reason != nil {
		window.Reason = *req.Reason
	}

	created, err := s.masterRepo.CreateUnavailability(ctx, window)
	if err != nil {
		s.logger.Error("CreateTimeOff: failed to create unavailability for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to create unavailability: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: created unavailability id=%d for master=%d", created.ID, created.MasterID)
	return models.FromDomainUnavailability(created), nil
}

// validateTimeOffRequest проверяет корректность запроса на создание окна
func validateTimeOffRequest(req *models.CreateTimeOffRequest) error {
	if req.MasterID <= 0 {
		return fmt.Errorf("%w: master ID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}

	if req.RepeatUntil != nil && req.RepeatUntil.Before(req.StartAt) {
		return fmt.Errorf("%w: repeatUntil must not be before start", ErrInvalidTimeRange)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxTimeOffReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxTimeOffReasonLength)
	}

	return nil
}
