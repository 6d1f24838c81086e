package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const week = 7 * 24 * time.Hour

// Interval полуинтервал [Start, End) в минутах от начала календарного дня
type Interval struct {
	Start int
	End   int
}

// IsEmpty возвращает true для пустого или вырожденного интервала
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps проверяет реальное пересечение интервалов
// Граничащие интервалы (конец одного = начало другого) пересечением не считаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// DayBounds возвращает границы календарного дня [00:00, 24:00) даты date в loc.
// Календарный день определяется компонентами год/месяц/день самой даты
// (а не моментом date, прочитанным в loc): дата "2026-03-10" означает
// 10 марта в таймзоне мастера независимо от того, в какой зоне она распарсена.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// MinutesInDay возвращает длину календарного дня в минутах
// Для дней перевода часов может отличаться от 1440
func MinutesInDay(date time.Time, loc *time.Location) int {
	start, end := DayBounds(date, loc)
	return int(end.Sub(start) / time.Minute)
}

// TemplateIntervals возвращает интервалы недельного шаблона на день недели,
// отсортированные по началу
func TemplateIntervals(tpl domain.WeeklyTemplate, weekday time.Weekday) ([]Interval, error) {
	raw := tpl[weekday]
	out := make([]Interval, 0, len(raw))

	for _, ti := range raw {
		open, err := ti.Open.Minutes()
		if err != nil {
			return nil, fmt.Errorf("template open time: %w", err)
		}
		closeAt, err := ti.Close.Minutes()
		if err != nil {
			return nil, fmt.Errorf("template close time: %w", err)
		}
		iv := Interval{Start: open, End: closeAt}
		if iv.IsEmpty() {
			continue
		}
		out = append(out, iv)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Start < out[b].Start })
	return out, nil
}

// WindowIntervals разворачивает окна недоступности в минутные интервалы дня date.
// Окна, пересекающие границу суток (начались накануне или уходят за полночь),
// обрезаются до границ дня. Еженедельно повторяющиеся окна разворачиваются
// до repeat_until включительно.
func WindowIntervals(windows []domain.Unavailability, date time.Time, loc *time.Location) []Interval {
	dayStart, dayEnd := DayBounds(date, loc)
	dayMinutes := int(dayEnd.Sub(dayStart) / time.Minute)

	out := make([]Interval, 0, len(windows))
	for _, w := range windows {
		for _, occ := range windowOccurrences(w, dayStart, dayEnd, loc) {
			iv, ok := clipToDay(occ.start, occ.end, dayStart, dayMinutes)
			if ok {
				out = append(out, iv)
			}
		}
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Start < out[b].Start })
	return out
}

type occurrence struct {
	start time.Time
	end   time.Time
}

// windowOccurrences возвращает вхождения окна, пересекающие [dayStart, dayEnd)
func windowOccurrences(w domain.Unavailability, dayStart, dayEnd time.Time, loc *time.Location) []occurrence {
	if w.EndAt.Sub(w.StartAt) <= 0 {
		return nil
	}

	if !w.IsRecurring() {
		if w.StartAt.Before(dayEnd) && w.EndAt.After(dayStart) {
			return []occurrence{{start: w.StartAt, end: w.EndAt}}
		}
		return nil
	}

	// Для повторяющихся окон достаточно проверить вхождения вокруг целевого дня:
	// более ранние заканчиваются до dayStart, более поздние начинаются после dayEnd
	length := w.EndAt.Sub(w.StartAt)
	kFrom := int(dayStart.Add(-length).Sub(w.StartAt)/week) - 1
	if kFrom < 0 {
		kFrom = 0
	}
	kTo := kFrom + int(length/week) + 2

	var out []occurrence
	for k := kFrom; k <= kTo; k++ {
		occStart := w.StartAt.AddDate(0, 0, 7*k)
		if k > 0 && startsAfterRepeatUntil(occStart, *w.RepeatUntil, loc) {
			break
		}
		occEnd := occStart.Add(length)
		if occStart.Before(dayEnd) && occEnd.After(dayStart) {
			out = append(out, occurrence{start: occStart, end: occEnd})
		}
	}
	return out
}

// startsAfterRepeatUntil сравнивает дату начала вхождения с repeat_until (по дням).
// occStart - момент времени, читается в loc; repeatUntil - календарная дата
// (DATE из БД), поэтому берутся ее компоненты без пересчета в loc.
func startsAfterRepeatUntil(occStart, repeatUntil time.Time, loc *time.Location) bool {
	s := occStart.In(loc)
	sDay := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	y, m, d := repeatUntil.Date()
	uDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return sDay.After(uDay)
}

// clipToDay обрезает [start, end) до границ дня и переводит в минутные смещения
func clipToDay(start, end, dayStart time.Time, dayMinutes int) (Interval, bool) {
	startMin := int(start.Sub(dayStart) / time.Minute)
	endMin := int(end.Sub(dayStart) / time.Minute)

	if startMin < 0 {
		startMin = 0
	}
	if endMin > dayMinutes {
		endMin = dayMinutes
	}

	iv := Interval{Start: startMin, End: endMin}
	return iv, !iv.IsEmpty()
}

// Subtract вычитает блокировки из открытых интервалов,
// возвращает отсортированный список оставшихся открытых интервалов
func Subtract(open []Interval, blocks []Interval) []Interval {
	free := make([]Interval, 0, len(open))
	for _, iv := range open {
		if !iv.IsEmpty() {
			free = append(free, iv)
		}
	}

	sorted := make([]Interval, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start < sorted[b].Start })

	for _, b := range sorted {
		if b.IsEmpty() {
			continue
		}
		next := make([]Interval, 0, len(free)+1)
		for _, f := range free {
			// нет пересечения
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			// обрезаем слева
			if b.Start > f.Start {
				next = append(next, Interval{Start: f.Start, End: b.Start})
			}
			// обрезаем справа
			if b.End < f.End {
				next = append(next, Interval{Start: b.End, End: f.End})
			}
		}
		free = next
	}

	sort.Slice(free, func(a, b int) bool { return free[a].Start < free[b].Start })
	return free
}

// OpenIntervals вычисляет открытые интервалы мастера на дату:
// недельный шаблон минус окна недоступности, в границах [00:00, 24:00) дня.
// Чистая функция: одинаковые входы дают одинаковый результат.
func OpenIntervals(tpl domain.WeeklyTemplate, windows []domain.Unavailability, date time.Time, loc *time.Location) ([]Interval, error) {
	// день недели - от компонентов даты, в соответствии с DayBounds
	template, err := TemplateIntervals(tpl, date.Weekday())
	if err != nil {
		return nil, err
	}

	dayMinutes := MinutesInDay(date, loc)
	clipped := make([]Interval, 0, len(template))
	for _, iv := range template {
		if iv.Start < 0 {
			iv.Start = 0
		}
		if iv.End > dayMinutes {
			iv.End = dayMinutes
		}
		if !iv.IsEmpty() {
			clipped = append(clipped, iv)
		}
	}

	return Subtract(clipped, WindowIntervals(windows, date, loc)), nil
}
