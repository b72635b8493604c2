package check_conflicts

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на проверку пересечений
type Request struct {
	StartAt              time.Time // Начало проверяемого интервала
	DurationMinutes      int       // Длительность в минутах
	ExcludeReservationID *int64    // Резерв, который не учитывается (при переносе)
}

// Response результат проверки
type Response struct {
	HasConflict bool
	Conflicting []domain.Reservation // Отсортированы по времени начала
}
