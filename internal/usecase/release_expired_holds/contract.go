package release_expired_holds

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.ReservationStatus) error
}

// HoldStore хранилище удержаний
type HoldStore interface {
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Hold, error)
	Delete(ctx context.Context, id string) error
}

// MetricsRecorder метрики освобождения удержаний
type MetricsRecorder interface {
	RecordHoldsReleased(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
