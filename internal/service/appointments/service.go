package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	masterRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/master"
	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	masterRepo      MasterRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	masterRepo MasterRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		masterRepo:      masterRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только собственные записи, оператору доступны все
func (s *Service) GetByID(ctx context.Context, id, actorID int64, actorRole domain.Role) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d role=%s", id, actorID, actorRole)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if actorRole != domain.RoleOperator && appointment.ClientID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetMasterDay получает все записи мастера за календарный день, включая отмененные.
// Используется операторским календарем, поэтому неактивные записи тоже возвращаются.
func (s *Service) GetMasterDay(ctx context.Context, req *models.GetMasterDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetMasterDay: fetching appointments for master=%d, date=%s",
		req.MasterID, req.Date.Format(domain.DateFormat))

	master, err := s.masterRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("GetMasterDay: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		s.logger.Error("GetMasterDay: repository error for master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterDay - repository error: %v", ErrInternal, err)
	}

	loc, err := master.Location()
	if err != nil {
		s.logger.Error("GetMasterDay: master id=%d has invalid timezone %q: %v", master.ID, master.Timezone, err)
		return nil, fmt.Errorf("%w: invalid master timezone: %v", ErrInternal, err)
	}

	dayStart, dayEnd := schedule.DayBounds(req.Date, loc)

	appointments, err := s.appointmentRepo.GetByMasterAndRange(ctx, req.MasterID, dayStart, dayEnd, false)
	if err != nil {
		s.logger.Error("GetMasterDay: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterDay: successfully fetched %d appointments for master=%d",
		len(appointments), req.MasterID)
	return models.FromDomainAppointmentList(appointments), nil
}
