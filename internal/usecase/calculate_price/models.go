package calculate_price

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Request модель запроса на расчет цены
type Request struct {
	TreatmentID     int64     // ID процедуры
	DurationID      *int64    // ID варианта длительности
	BookingAt       time.Time // Время начала записи
	SubscriptionID  *int64    // Абонемент, которым оплачивается запись
	VoucherCode     *string   // Код подарочного сертификата
	CouponCode      *string   // Код промо-купона
	RequesterUserID *int64    // Пользователь, для которого считается цена
}

// Response модель ответа с детализацией цены
type Response struct {
	TreatmentID int64
	DurationID  *int64
	BookingAt   time.Time
	Breakdown   *domain.PriceBreakdown
}
