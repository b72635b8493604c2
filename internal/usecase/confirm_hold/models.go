package confirm_hold

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на подтверждение удержания
type Request struct {
	UserID int64  // ID пользователя (из заголовка X-User-ID)
	HoldID string // ID удержания
}

// Response модель ответа с подтвержденным резервом
type Response struct {
	ReservationID   int64
	TreatmentID     int64
	StartAt         time.Time
	DurationMinutes int
	Status          domain.ReservationStatus
}
