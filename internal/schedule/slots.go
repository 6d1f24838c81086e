package schedule

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// NoCutoff выключает фильтрацию слотов по текущему времени
// (дата запроса не сегодня)
const NoCutoff = -1

// GenerateSlots возвращает отсортированные старты бронируемых слотов
// в минутах от начала дня.
//
// Старты идут с шагом granularityMinutes от начала каждого открытого интервала.
// Слот попадает в результат, если:
//   - [t, t+duration) целиком помещается в один открытый интервал;
//   - [t, t+duration) не пересекается ни с одним занятым интервалом
//     (граничащие интервалы пересечением не считаются);
//   - t не раньше cutoffMinute (NoCutoff выключает проверку).
func GenerateSlots(open []Interval, durationMinutes, granularityMinutes int, busy []Interval, cutoffMinute int) []int {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return nil
	}

	out := make([]int, 0)
	for _, iv := range open {
		// интервал короче длительности услуги не дает ни одного слота
		for t := iv.Start; t+durationMinutes <= iv.End; t += granularityMinutes {
			if cutoffMinute != NoCutoff && t < cutoffMinute {
				continue
			}
			if overlapsAny(Interval{Start: t, End: t + durationMinutes}, busy) {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// BusyFromAppointments переводит занимающие календарь записи в минутные
// интервалы дня, начинающегося в dayStart. Записи, пересекающие границы дня,
// обрезаются; неактивные (отмененные, no-show) пропускаются.
func BusyFromAppointments(appointments []*domain.Appointment, dayStart time.Time, dayMinutes int) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsOccupying() {
			continue
		}
		iv, ok := clipToDay(a.StartAt, a.EndAt, dayStart, dayMinutes)
		if ok {
			busy = append(busy, iv)
		}
	}
	return busy
}

// Fits возвращает true, если [start, start+duration) целиком лежит
// внутри одного из открытых интервалов
func Fits(open []Interval, start, durationMinutes int) bool {
	end := start + durationMinutes
	for _, iv := range open {
		if start >= iv.Start && end <= iv.End {
			return true
		}
	}
	return false
}
