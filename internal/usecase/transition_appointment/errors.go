package transition_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("transition_appointment: appointment not found")

	// ErrInvalidTransition возвращается при переходе, которого нет в таблице допустимых
	ErrInvalidTransition = errors.New("transition_appointment: status transition is not allowed")

	// ErrForbidden возвращается, когда у действующего лица нет прав на этот переход
	ErrForbidden = errors.New("transition_appointment: operation is not permitted for this actor")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_appointment: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("transition_appointment: store unavailable")
)
