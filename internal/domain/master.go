package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Master мастер, выполняющий услуги по собственному графику
type Master struct {
	ID       int64
	Name     string
	Timezone string // IANA имя, например "Europe/Moscow"
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает таймзону мастера
func (m *Master) Location() (*time.Location, error) {
	return time.LoadLocation(m.Timezone)
}

// TemplateInterval открытый интервал рабочих часов в шаблоне недели
type TemplateInterval struct {
	Open  types.TimeString
	Close types.TimeString
}

// WeeklyTemplate недельный шаблон рабочих часов мастера
// На один день недели может приходиться несколько интервалов (смена с перерывом)
type WeeklyTemplate map[time.Weekday][]TemplateInterval

// Unavailability окно недоступности мастера (отпуск, перерыв, болезнь)
// Полуинтервал [StartAt, EndAt); может пересекать границу суток.
// При заданном RepeatUntil окно повторяется еженедельно до этой даты включительно.
type Unavailability struct {
	ID          int64
	MasterID    int64
	StartAt     time.Time
	EndAt       time.Time
	Reason      string
	RepeatUntil *time.Time

	CreatedAt time.Time
}

// IsRecurring возвращает true для еженедельно повторяющегося окна
func (u *Unavailability) IsRecurring() bool {
	return u.RepeatUntil != nil
}
