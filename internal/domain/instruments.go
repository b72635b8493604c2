package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus lifecycle of a prepaid subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a prepaid bundle of sessions of one treatment
type Subscription struct {
	ID                int64
	UserID            int64
	TreatmentID       int64
	DurationID        *int64 // set for duration-based treatments
	Status            SubscriptionStatus
	RemainingQuantity int
}

// VoucherKind distinguishes vouchers that cover a treatment from stored-value vouchers
type VoucherKind string

const (
	VoucherTreatment VoucherKind = "treatment"
	VoucherMonetary  VoucherKind = "monetary"
)

// VoucherStatus lifecycle of a gift voucher
type VoucherStatus string

const (
	VoucherActive    VoucherStatus = "active"
	VoucherRedeemed  VoucherStatus = "redeemed"
	VoucherCancelled VoucherStatus = "cancelled"
)

// Voucher is a gift voucher
type Voucher struct {
	ID               int64
	Code             string
	Kind             VoucherKind
	TreatmentID      *int64
	DurationID       *int64
	RemainingBalance decimal.Decimal
	Status           VoucherStatus
	ExpiresAt        *time.Time
}

// IsExpired reports whether the voucher expired before now
func (v *Voucher) IsExpired(now time.Time) bool {
	return v.ExpiresAt != nil && !now.Before(*v.ExpiresAt)
}

// Coupon is a promotional discount code
type Coupon struct {
	ID           int64
	Code         string
	Discount     Amount
	IsActive     bool
	ValidFrom    *time.Time
	ValidUntil   *time.Time
	UsageLimit   *int
	UsedCount    int
	PerUserLimit *int
	MinAmount    *decimal.Decimal
	TreatmentIDs []int64 // empty = every treatment
}

// AppliesTo reports whether the coupon may be used for the treatment
func (c *Coupon) AppliesTo(treatmentID int64) bool {
	if len(c.TreatmentIDs) == 0 {
		return true
	}
	for _, id := range c.TreatmentIDs {
		if id == treatmentID {
			return true
		}
	}
	return false
}

// Instruments is the set of discount instruments supplied for one calculation.
// Codes record what the customer entered; the records are what the caller resolved.
type Instruments struct {
	Subscription     *Subscription
	VoucherCode      *string
	Voucher          *Voucher
	CouponCode       *string
	Coupon           *Coupon
	CouponUsesByUser int
}
