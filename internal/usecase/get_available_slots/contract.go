package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Treatment, error)
}

// ReservationRepository интерфейс репозитория резервов
type ReservationRepository interface {
	GetByWindow(ctx context.Context, filter domain.ReservationWindowFilter) ([]domain.Reservation, error)
}

// WorkingHoursSource источник расписания рабочих часов
type WorkingHoursSource interface {
	Get(ctx context.Context) (*domain.WorkingHoursConfig, error)
}

// DayResolver выбирает правило рабочего дня
type DayResolver interface {
	ResolveDay(date types.Date, cfg *domain.WorkingHoursConfig) *domain.DayRule
}

// SlotGenerator генератор слотов
type SlotGenerator interface {
	Generate(date types.Date, durationMinutes int, rule *domain.DayRule, reservations []domain.Reservation, now time.Time) (slots.Result, error)
}

// Clock календарь сервиса (часовой пояс)
type Clock interface {
	CalendarDay(t time.Time) types.Date
	DayBounds(d types.Date) (time.Time, time.Time)
}

// MetricsRecorder метрики выдачи слотов
type MetricsRecorder interface {
	RecordSlots(outcome string, count int)
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
