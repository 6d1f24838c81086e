package domain

// allowedTransitions закрытая таблица допустимых переходов статусов.
// Любой переход, которого здесь нет, запрещен.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending: {
		StatusConfirmed,
		StatusCancelledByClient,
		StatusCancelledByOperator,
	},
	StatusConfirmed: {
		StatusCompleted,
		StatusNoShow,
		StatusCancelledByClient,
		StatusCancelledByOperator,
	},
	// Терминальные статусы: переходов нет
	StatusCompleted:           {},
	StatusNoShow:              {},
	StatusCancelledByClient:   {},
	StatusCancelledByOperator: {},
}

// CanTransition проверяет переход статуса по таблице допустимых переходов
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
