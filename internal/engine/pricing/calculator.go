// Package pricing turns a treatment selection and a stack of discount
// instruments into an itemised price breakdown.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/payout"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
)

const defaultSurchargeDescription = "time-based surcharge"

// DayResolver resolves the day rule for an instant
type DayResolver interface {
	ResolveAt(instant time.Time, cfg *domain.WorkingHoursConfig) *domain.DayRule
}

// PaymentSplitter computes the professional/operator split
type PaymentSplitter interface {
	Split(treatment *domain.Treatment, durationID *int64, breakdown *domain.PriceBreakdown) (payout.Split, error)
}

// Input is everything one calculation needs. All records are snapshots
// fetched by the caller; the calculator never mutates them.
type Input struct {
	Treatment       *domain.Treatment
	DurationID      *int64
	BookingAt       time.Time
	WorkingHours    *domain.WorkingHoursConfig
	Instruments     domain.Instruments
	RequesterUserID *int64
	Now             time.Time
}

// Calculator runs the pricing pipeline. The steps run in a fixed order:
// surcharge, subscription, treatment voucher, monetary voucher, coupon.
type Calculator struct {
	clock    *servicetime.Clock
	resolver DayResolver
	splitter PaymentSplitter
}

func NewCalculator(clock *servicetime.Clock, resolver DayResolver, splitter PaymentSplitter) *Calculator {
	return &Calculator{
		clock:    clock,
		resolver: resolver,
		splitter: splitter,
	}
}

// Calculate returns a complete breakdown or a single error; never both.
func (c *Calculator) Calculate(in Input) (*domain.PriceBreakdown, error) {
	if in.Treatment == nil {
		return nil, ErrTreatmentRequired
	}
	if !in.Treatment.IsActive {
		return nil, fmt.Errorf("%w: treatment id=%d", ErrTreatmentInactive, in.Treatment.ID)
	}

	sel, err := in.Treatment.Select(in.DurationID)
	if err != nil {
		return nil, err
	}

	b := &domain.PriceBreakdown{
		BasePrice:          sel.Price,
		Surcharges:         []domain.SurchargeLine{},
		TotalSurcharges:    decimal.Zero,
		PriceAfterCoverage: sel.Price,
		CouponDiscount:     decimal.Zero,
		VoucherApplied:     decimal.Zero,
	}

	c.applySurcharge(b, in)

	if err := c.applySubscription(b, in, sel); err != nil {
		return nil, err
	}

	voucherSupplied := in.Instruments.VoucherCode != nil || in.Instruments.Voucher != nil
	if voucherSupplied {
		if err := c.applyVoucher(b, in, sel); err != nil {
			return nil, err
		}
	}

	couponSupplied := in.Instruments.CouponCode != nil || in.Instruments.Coupon != nil
	if couponSupplied && !voucherSupplied && in.Instruments.Subscription == nil {
		if err := c.applyCoupon(b, in); err != nil {
			return nil, err
		}
	}

	b.FinalAmount = decimal.Max(decimal.Zero, b.PriceAfterCoverage.
		Add(b.TotalSurcharges).
		Sub(b.CouponDiscount).
		Sub(b.VoucherApplied))
	b.FullyCovered = b.FinalAmount.IsZero()

	split, err := c.splitter.Split(in.Treatment, in.DurationID, b)
	if err != nil {
		return nil, err
	}
	split.Apply(b)

	return b, nil
}

// applySurcharge adds the day rule's surcharge when the booking time falls in
// its window. Non-positive amounts are dropped.
func (c *Calculator) applySurcharge(b *domain.PriceBreakdown, in Input) {
	rule := c.resolver.ResolveAt(in.BookingAt, in.WorkingHours)
	s, ok := rule.ActiveSurcharge()
	if !ok {
		return
	}
	if s.TimeRange != nil && !s.TimeRange.Contains(c.clock.TimeOfDay(in.BookingAt)) {
		return
	}

	amount := s.Amount.Of(b.BasePrice)
	if !amount.IsPositive() {
		return
	}

	line := domain.SurchargeLine{Description: s.Description, Amount: amount}
	if line.Description == "" {
		line.Description = defaultSurchargeDescription
	}
	if s.ProfessionalShare != nil {
		share := s.ProfessionalShare.Of(amount)
		line.ProfessionalShare = &share
	}

	b.Surcharges = append(b.Surcharges, line)
	b.TotalSurcharges = b.TotalSurcharges.Add(amount)
}

// applySubscription fully covers the base price. Decrementing the remaining
// quantity is left to the caller's commit.
func (c *Calculator) applySubscription(b *domain.PriceBreakdown, in Input, sel domain.Selection) error {
	sub := in.Instruments.Subscription
	if sub == nil {
		return nil
	}

	if in.RequesterUserID == nil {
		return ErrRequesterRequired
	}
	if sub.Status != domain.SubscriptionActive {
		return fmt.Errorf("%w: subscription id=%d status=%s", ErrSubscriptionInactive, sub.ID, sub.Status)
	}
	if sub.RemainingQuantity <= 0 {
		return fmt.Errorf("%w: subscription id=%d", ErrSubscriptionDepleted, sub.ID)
	}
	if sub.UserID != *in.RequesterUserID {
		return fmt.Errorf("%w: subscription id=%d", ErrSubscriptionNotOwned, sub.ID)
	}
	if sub.TreatmentID != in.Treatment.ID || !sameDuration(in.Treatment, sub.DurationID, sel) {
		return fmt.Errorf("%w: subscription id=%d", ErrSubscriptionMismatch, sub.ID)
	}

	b.PriceAfterCoverage = decimal.Zero
	b.CoveredBySubscription = true
	b.RedeemedSubscriptionID = ptr.Ptr(sub.ID)
	return nil
}

// applyVoucher handles both voucher kinds. A treatment voucher covers the base
// price unless a subscription already did; a monetary voucher pays down what
// is left of base plus surcharges.
func (c *Calculator) applyVoucher(b *domain.PriceBreakdown, in Input, sel domain.Selection) error {
	v := in.Instruments.Voucher
	if v == nil {
		return fmt.Errorf("%w: code=%s", ErrVoucherNotFound, deref(in.Instruments.VoucherCode))
	}

	switch v.Kind {
	case domain.VoucherTreatment:
		if b.CoveredBySubscription {
			return nil
		}
		if err := checkVoucherState(v, in.Now); err != nil {
			return err
		}
		if v.TreatmentID == nil || *v.TreatmentID != in.Treatment.ID || !sameDuration(in.Treatment, v.DurationID, sel) {
			return fmt.Errorf("%w: voucher id=%d", ErrVoucherMismatch, v.ID)
		}
		b.VoucherApplied = b.BasePrice
		b.CoveredByTreatmentVoucher = true
		b.AppliedVoucherID = ptr.Ptr(v.ID)

	case domain.VoucherMonetary:
		remainder := b.PriceAfterCoverage.Add(b.TotalSurcharges)
		if !remainder.IsPositive() {
			return nil
		}
		if err := checkVoucherState(v, in.Now); err != nil {
			return err
		}
		if !v.RemainingBalance.IsPositive() {
			return fmt.Errorf("%w: voucher id=%d", ErrVoucherDepleted, v.ID)
		}
		b.VoucherApplied = decimal.Min(remainder, v.RemainingBalance)
		b.AppliedVoucherID = ptr.Ptr(v.ID)

	default:
		return fmt.Errorf("%w: voucher id=%d has unknown kind %q", domain.ErrInvalidInput, v.ID, v.Kind)
	}

	return nil
}

// applyCoupon discounts the remaining balance. Only reached when no voucher and
// no subscription were supplied.
func (c *Calculator) applyCoupon(b *domain.PriceBreakdown, in Input) error {
	remaining := b.PriceAfterCoverage.Add(b.TotalSurcharges).Sub(b.VoucherApplied)
	if !remaining.IsPositive() {
		return nil
	}

	cp := in.Instruments.Coupon
	if cp == nil {
		return fmt.Errorf("%w: code=%s", ErrCouponNotFound, deref(in.Instruments.CouponCode))
	}
	if err := checkCoupon(cp, in.Treatment.ID, remaining, in.Instruments.CouponUsesByUser, in.Now); err != nil {
		return err
	}

	b.CouponDiscount = decimal.Min(cp.Discount.Of(remaining), remaining)
	b.AppliedCouponID = ptr.Ptr(cp.ID)
	return nil
}

func checkVoucherState(v *domain.Voucher, now time.Time) error {
	if v.Status != domain.VoucherActive {
		return fmt.Errorf("%w: voucher id=%d status=%s", ErrVoucherInactive, v.ID, v.Status)
	}
	if v.IsExpired(now) {
		return fmt.Errorf("%w: voucher id=%d", ErrVoucherExpired, v.ID)
	}
	return nil
}

func checkCoupon(cp *domain.Coupon, treatmentID int64, subtotal decimal.Decimal, usesByUser int, now time.Time) error {
	switch {
	case !cp.IsActive:
		return fmt.Errorf("%w: coupon id=%d", ErrCouponInactive, cp.ID)
	case cp.ValidFrom != nil && now.Before(*cp.ValidFrom):
		return fmt.Errorf("%w: coupon id=%d", ErrCouponNotStarted, cp.ID)
	case cp.ValidUntil != nil && !now.Before(*cp.ValidUntil):
		return fmt.Errorf("%w: coupon id=%d", ErrCouponExpired, cp.ID)
	case cp.UsageLimit != nil && cp.UsedCount >= *cp.UsageLimit:
		return fmt.Errorf("%w: coupon id=%d", ErrCouponUsageLimit, cp.ID)
	case cp.PerUserLimit != nil && usesByUser >= *cp.PerUserLimit:
		return fmt.Errorf("%w: coupon id=%d", ErrCouponUserLimit, cp.ID)
	case !cp.AppliesTo(treatmentID):
		return fmt.Errorf("%w: coupon id=%d", ErrCouponNotApplicable, cp.ID)
	case cp.MinAmount != nil && subtotal.LessThan(*cp.MinAmount):
		return fmt.Errorf("%w: coupon id=%d minimum=%s", ErrCouponMinAmount, cp.ID, cp.MinAmount)
	}
	return nil
}

// sameDuration checks an instrument's duration binding. Only duration-based
// treatments carry one.
func sameDuration(t *domain.Treatment, bound *int64, sel domain.Selection) bool {
	if !t.IsDurationBased() {
		return true
	}
	return bound != nil && sel.Duration != nil && *bound == sel.Duration.ID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
