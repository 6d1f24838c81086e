package domain

// SchedulingPolicy политика расписания, общая для сервиса
// Задается конфигурацией при старте
type SchedulingPolicy struct {
	SlotGranularityMinutes int // шаг сетки слотов, не зависит от длительности услуги
	MinLeadTimeMinutes     int // минимальное время от "сейчас" до начала записи
	AdvanceBookingDays     int // 0 = без ограничения
}

// DefaultSchedulingPolicy возвращает политику с дефолтными значениями
func DefaultSchedulingPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		MinLeadTimeMinutes:     DefaultMinLeadTimeMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit возвращает true при ограничении глубины бронирования
func (p SchedulingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
