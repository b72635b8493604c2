package hold_slot

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на удержание слота
type Request struct {
	UserID      int64            // ID пользователя (из заголовка X-User-ID)
	TreatmentID int64            // ID процедуры
	DurationID  *int64           // ID варианта длительности
	Date        types.Date       // Дата записи
	StartTime   types.TimeString // Время начала в формате HH:MM
}

// Response модель ответа с данными удержания
type Response struct {
	HoldID          string
	ReservationID   int64
	TreatmentID     int64
	StartAt         time.Time
	DurationMinutes int
	ExpiresAt       time.Time
}
