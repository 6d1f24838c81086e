package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/schedule"
)

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service ID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: master ID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не выходит за горизонт бронирования
func validateDate(date, now time.Time, advanceBookingDays int) error {
	today := truncateToDay(now)
	requested := truncateToDay(date)

	if requested.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format("2006-01-02"))
	}

	if advanceBookingDays > 0 {
		limit := today.AddDate(0, 0, advanceBookingDays)
		if requested.After(limit) {
			return fmt.Errorf("%w: date %s is beyond %d days",
				ErrDateTooFarInFuture, date.Format("2006-01-02"), advanceBookingDays)
		}
	}

	return nil
}

// cutoffMinute возвращает минимально допустимую минуту старта слота для запрошенной даты.
// Для будущих дат отсечки нет; для сегодняшнего дня слоты раньше now+leadTime недоступны.
func cutoffMinute(date, now time.Time, loc *time.Location, minLeadTimeMinutes int) int {
	localNow := now.In(loc)
	if !isSameDay(date, localNow) {
		return schedule.NoCutoff
	}

	return localNow.Hour()*60 + localNow.Minute() + minLeadTimeMinutes
}

// isSameDay сравнивает календарные дни без учета времени
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
