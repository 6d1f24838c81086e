package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Машиночитаемые виды ошибок в теле ответа
const (
	KindInvalidInput        = "invalid_input"
	KindInvalidSelection    = "invalid_selection"
	KindNotFound            = "not_found"
	KindIneligibleMaster    = "ineligible_master"
	KindOutsideAvailability = "outside_availability"
	KindSlotConflict        = "slot_conflict"
	KindInvalidTransition   = "invalid_transition"
	KindForbidden           = "forbidden"
	KindUnauthorized        = "unauthorized"
	KindStoreUnavailable    = "store_unavailable"
	KindInternal            = "internal_error"
)

const maxBodyBytes = 1 << 20 // 1 MB

// ErrorBody тело ответа с ошибкой
type ErrorBody struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// DecodeJSON декодирует тело запроса в указанную структуру
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ответ с ошибкой указанного вида
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorBody{ErrorKind: kind, Message: message})
}

// RespondBadRequest отправляет 400 с видом invalid_input
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindInvalidInput, message)
}

// RespondNotFound отправляет 404 с видом not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondForbidden отправляет 403 с видом forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindForbidden, message)
}

// RespondInternalError отправляет 500 с видом internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, "внутренняя ошибка сервиса")
}

// RespondStoreUnavailable отправляет 503 с видом store_unavailable
func RespondStoreUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, KindStoreUnavailable, "хранилище временно недоступно, повторите запрос")
}
