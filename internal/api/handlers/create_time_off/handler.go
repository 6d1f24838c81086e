package create_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/masters"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается RFC3339"
	msgMasterNotFound     = "мастер не найден"
	msgInvalidTimeRange   = "некорректный временной диапазон"
	msgInvalidInput       = "некорректные входные данные"
	msgOperatorOnly       = "создание окон недоступности доступно только операторам"
)

type Handler struct {
	service MastersService
	logger  Logger
}

func NewHandler(service MastersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/masters/{masterId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.ActorRole(r.Context())
	if !ok || role != domain.RoleOperator {
		h.logger.Warn("POST /masters/{id}/time-off - Operator role required")
		handlers.RespondForbidden(w, msgOperatorOnly)
		return
	}

	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/time-off - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /masters/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(masterID)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/time-off - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.service.CreateTimeOff(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, masters.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{id}/time-off - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, masters.ErrInvalidTimeRange):
			h.logger.Warn("POST /masters/{id}/time-off - Invalid time range: master_id=%d", masterID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, masters.ErrInvalidInput):
			h.logger.Warn("POST /masters/{id}/time-off - Invalid input: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /masters/{id}/time-off - Failed: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /masters/{id}/time-off - Time-off created: id=%d, master_id=%d", result.ID, masterID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
