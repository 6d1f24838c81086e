package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("create_appointment: master not found")

	// ErrIneligibleMaster возвращается, когда мастер не выполняет эту услугу
	ErrIneligibleMaster = errors.New("create_appointment: master is not qualified for this service")

	// ErrOutsideAvailability возвращается, когда слот не попадает в рабочий график мастера
	ErrOutsideAvailability = errors.New("create_appointment: slot is outside master availability")

	// ErrSlotConflict возвращается, когда слот пересекается с существующей записью
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrTooLateToBook возвращается при нарушении минимального lead time
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("create_appointment: store unavailable")
)
