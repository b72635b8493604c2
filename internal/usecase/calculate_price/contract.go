package calculate_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/pricing"
)

// TreatmentRepository интерфейс репозитория процедур
type TreatmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Treatment, error)
}

// InstrumentRepository интерфейс репозитория скидочных инструментов
type InstrumentRepository interface {
	GetSubscription(ctx context.Context, id int64) (*domain.Subscription, error)
	GetVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountCouponRedemptions(ctx context.Context, couponID, userID int64) (int, error)
}

// WorkingHoursSource источник расписания рабочих часов
type WorkingHoursSource interface {
	Get(ctx context.Context) (*domain.WorkingHoursConfig, error)
}

// PriceCalculator калькулятор цены
type PriceCalculator interface {
	Calculate(in pricing.Input) (*domain.PriceBreakdown, error)
}

// MetricsRecorder метрики расчета цены
type MetricsRecorder interface {
	RecordPriceCalculation(outcome string)
	RecordSubsidised()
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
