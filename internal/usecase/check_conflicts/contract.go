package check_conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/conflict"
)

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	GetByWindow(ctx context.Context, filter domain.ReservationWindowFilter) ([]domain.Reservation, error)
}

// ConflictDetector детектор пересечений
type ConflictDetector interface {
	Check(start time.Time, durationMinutes int, reservations []domain.Reservation, excludeID *int64) (conflict.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
