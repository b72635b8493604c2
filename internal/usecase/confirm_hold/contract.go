package confirm_hold

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.ReservationStatus) error
}

// HoldStore хранилище удержаний
type HoldStore interface {
	Get(ctx context.Context, id string, now time.Time) (*domain.Hold, error)
	Delete(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
