package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента (из заголовков аутентификации)
	ServiceID int64            // ID услуги
	MasterID  int64            // ID мастера
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала, например "10:00"
	Notes     *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	MasterID        int64
	ServiceID       int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	CreatedAt       time.Time
}
