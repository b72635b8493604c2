package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	ErrTreatmentRequired = fmt.Errorf("%w: treatment is required", domain.ErrInvalidInput)
	ErrTreatmentInactive = fmt.Errorf("%w: treatment is not active", domain.ErrStateConflict)
	ErrRequesterRequired = fmt.Errorf("%w: requester is required to redeem a subscription", domain.ErrInvalidInput)

	ErrSubscriptionInactive = fmt.Errorf("%w: subscription is not active", domain.ErrStateConflict)
	ErrSubscriptionDepleted = fmt.Errorf("%w: subscription has no remaining sessions", domain.ErrStateConflict)
	ErrSubscriptionNotOwned = fmt.Errorf("%w: subscription belongs to another user", domain.ErrNotFound)
	ErrSubscriptionMismatch = fmt.Errorf("%w: subscription does not cover this treatment", domain.ErrNotFound)

	ErrVoucherNotFound = fmt.Errorf("%w: voucher not found", domain.ErrNotFound)
	ErrVoucherInactive = fmt.Errorf("%w: voucher is not active", domain.ErrStateConflict)
	ErrVoucherExpired  = fmt.Errorf("%w: voucher has expired", domain.ErrStateConflict)
	ErrVoucherDepleted = fmt.Errorf("%w: voucher has no remaining balance", domain.ErrStateConflict)
	ErrVoucherMismatch = fmt.Errorf("%w: voucher does not cover this treatment", domain.ErrNotFound)

	ErrCouponNotFound      = fmt.Errorf("%w: coupon not found", domain.ErrNotFound)
	ErrCouponInactive      = fmt.Errorf("%w: coupon is not active", domain.ErrStateConflict)
	ErrCouponNotStarted    = fmt.Errorf("%w: coupon is not valid yet", domain.ErrStateConflict)
	ErrCouponExpired       = fmt.Errorf("%w: coupon has expired", domain.ErrStateConflict)
	ErrCouponUsageLimit    = fmt.Errorf("%w: coupon usage limit reached", domain.ErrStateConflict)
	ErrCouponUserLimit     = fmt.Errorf("%w: coupon already used the allowed number of times", domain.ErrStateConflict)
	ErrCouponMinAmount     = fmt.Errorf("%w: order is below the coupon minimum", domain.ErrStateConflict)
	ErrCouponNotApplicable = fmt.Errorf("%w: coupon does not apply to this treatment", domain.ErrStateConflict)
)
