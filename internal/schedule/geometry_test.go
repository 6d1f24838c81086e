package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func weekdayTemplate(open, close string) domain.WeeklyTemplate {
	tpl := domain.WeeklyTemplate{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		tpl[wd] = []domain.TemplateInterval{{
			Open:  mustTime(open),
			Close: mustTime(close),
		}}
	}
	return tpl
}

func TestOpenIntervals_NoWindows(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc) // понедельник

	open, err := OpenIntervals(weekdayTemplate("09:00", "17:00"), nil, date, loc)
	require.NoError(t, err)

	require.Len(t, open, 1)
	assert.Equal(t, Interval{Start: 9 * 60, End: 17 * 60}, open[0])
}

func TestDayBounds_DateParsedInOtherZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// HTTP-слой парсит дату как полночь UTC; границы дня мастера
	// западнее UTC все равно должны соответствовать 10 марта
	date, err := time.Parse("2006-01-02", "2026-03-10")
	require.NoError(t, err)

	start, end := DayBounds(date, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), end)
	assert.Equal(t, "2026-03-10", start.Format("2006-01-02"))
}

func TestOpenIntervals_DateParsedInOtherZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date, err := time.Parse("2006-01-02", "2026-03-10") // вторник
	require.NoError(t, err)

	tpl := domain.WeeklyTemplate{
		time.Tuesday: []domain.TemplateInterval{{Open: mustTime("09:00"), Close: mustTime("17:00")}},
	}

	open, err := OpenIntervals(tpl, nil, date, loc)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, Interval{Start: 9 * 60, End: 17 * 60}, open[0])
}

func TestOpenIntervals_MidDayWindow(t *testing.T) {
	// Окно 12:00-13:00 разрезает рабочий день 09:00-17:00 на два интервала
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)

	windows := []domain.Unavailability{{
		MasterID: 1,
		StartAt:  time.Date(2025, 11, 10, 12, 0, 0, 0, loc),
		EndAt:    time.Date(2025, 11, 10, 13, 0, 0, 0, loc),
		Reason:   "lunch",
	}}

	open, err := OpenIntervals(weekdayTemplate("09:00", "17:00"), windows, date, loc)
	require.NoError(t, err)

	require.Len(t, open, 2)
	assert.Equal(t, Interval{Start: 9 * 60, End: 12 * 60}, open[0])
	assert.Equal(t, Interval{Start: 13 * 60, End: 17 * 60}, open[1])
}

func TestOpenIntervals_WindowAcrossMidnight(t *testing.T) {
	// Окно 22:00 (9-е) - 10:00 (10-е) должно обрезаться границей каждого дня
	loc := time.UTC
	tpl := weekdayTemplate("08:00", "23:00")

	window := domain.Unavailability{
		MasterID: 1,
		StartAt:  time.Date(2025, 11, 9, 22, 0, 0, 0, loc),
		EndAt:    time.Date(2025, 11, 10, 10, 0, 0, 0, loc),
	}

	day1, err := OpenIntervals(tpl, []domain.Unavailability{window}, time.Date(2025, 11, 9, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, day1, 1)
	assert.Equal(t, Interval{Start: 8 * 60, End: 22 * 60}, day1[0])

	day2, err := OpenIntervals(tpl, []domain.Unavailability{window}, time.Date(2025, 11, 10, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, day2, 1)
	assert.Equal(t, Interval{Start: 10 * 60, End: 23 * 60}, day2[0])

	// Соседние дни окно не затрагивает
	day3, err := OpenIntervals(tpl, []domain.Unavailability{window}, time.Date(2025, 11, 11, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, day3, 1)
	assert.Equal(t, Interval{Start: 8 * 60, End: 23 * 60}, day3[0])
}

func TestOpenIntervals_OverlappingWindowsUnion(t *testing.T) {
	// Пересекающиеся окна одного мастера вычитаются как объединение
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)

	windows := []domain.Unavailability{
		{
			MasterID: 1,
			StartAt:  time.Date(2025, 11, 10, 11, 0, 0, 0, loc),
			EndAt:    time.Date(2025, 11, 10, 13, 0, 0, 0, loc),
		},
		{
			MasterID: 1,
			StartAt:  time.Date(2025, 11, 10, 12, 0, 0, 0, loc),
			EndAt:    time.Date(2025, 11, 10, 14, 0, 0, 0, loc),
		},
	}

	open, err := OpenIntervals(weekdayTemplate("09:00", "17:00"), windows, date, loc)
	require.NoError(t, err)

	require.Len(t, open, 2)
	assert.Equal(t, Interval{Start: 9 * 60, End: 11 * 60}, open[0])
	assert.Equal(t, Interval{Start: 14 * 60, End: 17 * 60}, open[1])
}

func TestOpenIntervals_FullyUnavailable(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)

	windows := []domain.Unavailability{{
		MasterID: 1,
		StartAt:  time.Date(2025, 11, 10, 0, 0, 0, 0, loc),
		EndAt:    time.Date(2025, 11, 11, 0, 0, 0, 0, loc),
		Reason:   "vacation",
	}}

	open, err := OpenIntervals(weekdayTemplate("09:00", "17:00"), windows, date, loc)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestOpenIntervals_WeeklyRecurrence(t *testing.T) {
	// Окно в понедельник 12:00-13:00, повторяется еженедельно до 24 ноября
	loc := time.UTC
	windows := []domain.Unavailability{{
		MasterID:    1,
		StartAt:     time.Date(2025, 11, 10, 12, 0, 0, 0, loc),
		EndAt:       time.Date(2025, 11, 10, 13, 0, 0, 0, loc),
		RepeatUntil: ptr.Ptr(time.Date(2025, 11, 24, 0, 0, 0, 0, loc)),
	}}
	tpl := weekdayTemplate("09:00", "17:00")

	// Следующий понедельник внутри периода повторения
	open, err := OpenIntervals(tpl, windows, time.Date(2025, 11, 17, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, open, 2)

	// Последний понедельник периода (repeat_until включительно)
	open, err = OpenIntervals(tpl, windows, time.Date(2025, 11, 24, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, open, 2)

	// Понедельник после repeat_until - окно больше не действует
	open, err = OpenIntervals(tpl, windows, time.Date(2025, 12, 1, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, Interval{Start: 9 * 60, End: 17 * 60}, open[0])

	// Вторник внутри периода повторения окно не затрагивает
	open, err = OpenIntervals(tpl, windows, time.Date(2025, 11, 18, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	require.Len(t, open, 1)
}

func TestOpenIntervals_WeeklyRecurrenceFinalDayWestOfUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// repeat_until хранится как DATE и приходит из БД полуночью UTC;
	// в последний день повторения окно должно действовать и для мастера западнее UTC
	windows := []domain.Unavailability{{
		MasterID:    1,
		StartAt:     time.Date(2026, 3, 3, 10, 0, 0, 0, loc),
		EndAt:       time.Date(2026, 3, 3, 11, 0, 0, 0, loc),
		RepeatUntil: ptr.Ptr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	}}
	tpl := domain.WeeklyTemplate{
		time.Tuesday: []domain.TemplateInterval{{Open: mustTime("09:00"), Close: mustTime("17:00")}},
	}

	date, err := time.Parse("2006-01-02", "2026-03-10")
	require.NoError(t, err)

	open, err := OpenIntervals(tpl, windows, date, loc)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, Interval{Start: 9 * 60, End: 10 * 60}, open[0])
	assert.Equal(t, Interval{Start: 11 * 60, End: 17 * 60}, open[1])
}

func TestOpenIntervals_Deterministic(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)
	tpl := weekdayTemplate("09:00", "17:00")
	windows := []domain.Unavailability{
		{MasterID: 1, StartAt: time.Date(2025, 11, 10, 12, 0, 0, 0, loc), EndAt: time.Date(2025, 11, 10, 13, 0, 0, 0, loc)},
		{MasterID: 1, StartAt: time.Date(2025, 11, 10, 15, 0, 0, 0, loc), EndAt: time.Date(2025, 11, 10, 15, 30, 0, 0, loc)},
	}

	first, err := OpenIntervals(tpl, windows, date, loc)
	require.NoError(t, err)
	second, err := OpenIntervals(tpl, windows, date, loc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOpenIntervals_SplitShift(t *testing.T) {
	// Два шаблонных интервала в один день (смена с перерывом)
	loc := time.UTC
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)

	tpl := domain.WeeklyTemplate{
		time.Monday: []domain.TemplateInterval{
			{Open: mustTime("09:00"), Close: mustTime("13:00")},
			{Open: mustTime("14:00"), Close: mustTime("18:00")},
		},
	}

	open, err := OpenIntervals(tpl, nil, date, loc)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, Interval{Start: 9 * 60, End: 13 * 60}, open[0])
	assert.Equal(t, Interval{Start: 14 * 60, End: 18 * 60}, open[1])
}

func TestOpenIntervals_EmptyTemplateDay(t *testing.T) {
	loc := time.UTC
	tpl := domain.WeeklyTemplate{
		time.Monday: []domain.TemplateInterval{{Open: mustTime("09:00"), Close: mustTime("17:00")}},
	}

	// Воскресенье в шаблоне отсутствует - мастер не работает
	open, err := OpenIntervals(tpl, nil, time.Date(2025, 11, 9, 0, 0, 0, 0, loc), loc)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSubtract_BlockCoversEverything(t *testing.T) {
	free := Subtract(
		[]Interval{{Start: 540, End: 1020}},
		[]Interval{{Start: 0, End: 1440}},
	)
	assert.Empty(t, free)
}

func TestSubtract_IgnoresEmptyBlocks(t *testing.T) {
	free := Subtract(
		[]Interval{{Start: 540, End: 1020}},
		[]Interval{{Start: 600, End: 600}, {Start: 700, End: 650}},
	)
	require.Len(t, free, 1)
	assert.Equal(t, Interval{Start: 540, End: 1020}, free[0])
}
