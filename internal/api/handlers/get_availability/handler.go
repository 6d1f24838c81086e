package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidMasterID   = "некорректный ID мастера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate       = "параметр date обязателен"
	msgServiceNotFound   = "услуга не найдена"
	msgMasterNotEligible = "указанный мастер не выполняет эту услугу"
	msgDateInPast        = "дата не может быть в прошлом"
	msgDateTooFar        = "дата слишком далеко в будущем"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots?date=YYYY-MM-DD&masterId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /available-slots - Missing date parameter: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &getAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	}

	if rawMaster := r.URL.Query().Get("masterId"); rawMaster != "" {
		masterID, err := strconv.ParseInt(rawMaster, 10, 64)
		if err != nil {
			h.logger.Warn("GET /available-slots - Invalid master ID %q: %v", rawMaster, err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		useCaseReq.MasterID = &masterID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidSelection):
			h.logger.Warn("GET /available-slots - Master not eligible: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindInvalidSelection, msgMasterNotEligible)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in past: service_id=%d, date=%s", serviceID, rawDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far: service_id=%d, date=%s", serviceID, rawDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /available-slots - Store unavailable: service_id=%d, error=%v", serviceID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("GET /available-slots - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots returned: service_id=%d, date=%s",
		len(result.Slots), serviceID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
