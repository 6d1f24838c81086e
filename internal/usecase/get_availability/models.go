package get_availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
	MasterID  *int64    // Конкретный мастер (опционально, nil = все квалифицированные)
}

// Response модель ответа со слотами и справочником мастеров
type Response struct {
	ServiceID int64
	Date      time.Time
	Slots     []domain.AvailableSlot // Слоты, отсортированные по времени начала
	Masters   []MasterInfo           // Мастера, участвовавшие в расчете
}

// MasterInfo краткая информация о мастере для выбора на стороне клиента
type MasterInfo struct {
	ID   int64
	Name string
}
