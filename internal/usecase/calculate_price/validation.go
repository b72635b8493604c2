package calculate_price

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}

	if req.DurationID != nil && *req.DurationID <= 0 {
		return fmt.Errorf("%w: durationID must be positive", ErrInvalidInput)
	}

	if req.BookingAt.IsZero() {
		return fmt.Errorf("%w: bookingAt is required", ErrInvalidInput)
	}

	if req.SubscriptionID != nil && *req.SubscriptionID <= 0 {
		return fmt.Errorf("%w: subscriptionID must be positive", ErrInvalidInput)
	}

	if req.VoucherCode != nil && strings.TrimSpace(*req.VoucherCode) == "" {
		return fmt.Errorf("%w: voucherCode must not be blank", ErrInvalidInput)
	}

	if req.CouponCode != nil && strings.TrimSpace(*req.CouponCode) == "" {
		return fmt.Errorf("%w: couponCode must not be blank", ErrInvalidInput)
	}

	return nil
}
