package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/payout"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/workinghours"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

const userID int64 = 42

var (
	clock  = servicetime.MustNew(servicetime.DefaultZone)
	monday = types.MustDate("2024-07-01")

	evening = clock.At(monday, types.MustTimeString("19:00"))
	morning = clock.At(monday, types.MustTimeString("10:00"))
	now     = clock.At(monday.AddDays(-3), types.MustTimeString("12:00"))
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCalculator() *Calculator {
	return NewCalculator(clock, workinghours.NewResolver(clock), payout.NewSplitter())
}

func fixedTreatment() *domain.Treatment {
	return &domain.Treatment{
		ID:                     1,
		Name:                   "Classic massage",
		PricingType:            domain.PricingFixed,
		FixedPrice:             ptr.Ptr(dec("200")),
		FixedProfessionalPrice: ptr.Ptr(dec("120")),
		DefaultDurationMinutes: ptr.Ptr(60),
		IsActive:               true,
	}
}

func durationTreatment() *domain.Treatment {
	return &domain.Treatment{
		ID:          2,
		Name:        "Deep tissue",
		PricingType: domain.PricingDurationBased,
		Durations: []domain.TreatmentDuration{
			{ID: 20, TreatmentID: 2, Minutes: 60, Price: dec("150"), ProfessionalPrice: dec("90"), IsActive: true},
			{ID: 21, TreatmentID: 2, Minutes: 90, Price: dec("210"), ProfessionalPrice: dec("120"), IsActive: true},
		},
		IsActive: true,
	}
}

// eveningSurcharge: Mondays 09:00-22:00 with 20% between 18:00 and 22:00.
func eveningSurcharge(share *domain.Amount) *domain.WorkingHoursConfig {
	return &domain.WorkingHoursConfig{Rules: []domain.RuleEntry{
		domain.FixedRule{Weekday: 1, Rule: domain.DayRule{
			IsActive:       true,
			WorkingPeriods: []domain.TimeRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("22:00")}},
			HasSurcharge:   true,
			Surcharge: &domain.Surcharge{
				Description:       "evening",
				Amount:            domain.Amount{Value: dec("20"), Kind: domain.AmountPercent},
				TimeRange:         &domain.TimeRange{Start: types.MustTimeString("18:00"), End: types.MustTimeString("22:00")},
				ProfessionalShare: share,
			},
		}},
	}}
}

func activeSubscription() *domain.Subscription {
	return &domain.Subscription{
		ID:                5,
		UserID:            userID,
		TreatmentID:       2,
		DurationID:        ptr.Ptr(int64(20)),
		Status:            domain.SubscriptionActive,
		RemainingQuantity: 3,
	}
}

func monetaryVoucher(balance string) *domain.Voucher {
	return &domain.Voucher{
		ID:               8,
		Code:             "GIFT100",
		Kind:             domain.VoucherMonetary,
		RemainingBalance: dec(balance),
		Status:           domain.VoucherActive,
		ExpiresAt:        ptr.Ptr(now.AddDate(0, 6, 0)),
	}
}

func percentCoupon(value string) *domain.Coupon {
	return &domain.Coupon{
		ID:       11,
		Code:     "SUMMER",
		Discount: domain.Amount{Value: dec(value), Kind: domain.AmountPercent},
		IsActive: true,
	}
}

func assertInvariants(t *testing.T, b *domain.PriceBreakdown) {
	t.Helper()
	expected := decimal.Max(decimal.Zero, b.PriceAfterCoverage.Add(b.TotalSurcharges).Sub(b.CouponDiscount).Sub(b.VoucherApplied))
	assert.True(t, b.FinalAmount.Equal(expected), "final %s != %s", b.FinalAmount, expected)
	assert.True(t, b.OperatorMargin.Equal(b.FinalAmount.Sub(b.ProfessionalPayment)), "margin drift")
	assert.True(t, b.ProfessionalPayment.Equal(b.BaseProfessionalPayment.Add(b.SurchargeProfessionalPayment)))
	assert.Equal(t, b.FinalAmount.IsZero(), b.FullyCovered)
}

func TestCalculate_SurchargeThenMonetaryVoucher(t *testing.T) {
	c := newCalculator()
	in := Input{Treatment: fixedTreatment(), BookingAt: evening, WorkingHours: eveningSurcharge(nil), Now: now}

	b, err := c.Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, "200", b.BasePrice.String())
	assert.Equal(t, "40", b.TotalSurcharges.String())
	assert.Equal(t, "240", b.FinalAmount.String())
	require.Len(t, b.Surcharges, 1)
	assert.Equal(t, "evening", b.Surcharges[0].Description)
	assert.Nil(t, b.Surcharges[0].ProfessionalShare)
	assertInvariants(t, b)

	in.Instruments = domain.Instruments{VoucherCode: ptr.Ptr("GIFT100"), Voucher: monetaryVoucher("100")}
	b, err = c.Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, "100", b.VoucherApplied.String())
	assert.Equal(t, "140", b.FinalAmount.String())
	assert.Equal(t, int64(8), *b.AppliedVoucherID)
	assert.Equal(t, "20", b.OperatorMargin.String())
	assertInvariants(t, b)
}

func TestCalculate_SubscriptionCoverageIsSubsidised(t *testing.T) {
	c := newCalculator()

	b, err := c.Calculate(Input{
		Treatment:       durationTreatment(),
		DurationID:      ptr.Ptr(int64(20)),
		BookingAt:       morning,
		Instruments:     domain.Instruments{Subscription: activeSubscription()},
		RequesterUserID: ptr.Ptr(userID),
		Now:             now,
	})
	require.NoError(t, err)

	assert.True(t, b.CoveredBySubscription)
	assert.True(t, b.FullyCovered)
	assert.Equal(t, "0", b.FinalAmount.String())
	assert.Equal(t, "90", b.ProfessionalPayment.String())
	assert.Equal(t, "-90", b.OperatorMargin.String())
	assert.True(t, b.IsSubsidised())
	assert.Equal(t, int64(5), *b.RedeemedSubscriptionID)
	assertInvariants(t, b)
}

func TestCalculate_SurchargeWindowAndShare(t *testing.T) {
	c := newCalculator()
	share := &domain.Amount{Value: dec("50"), Kind: domain.AmountPercent}

	b, err := c.Calculate(Input{Treatment: fixedTreatment(), BookingAt: morning, WorkingHours: eveningSurcharge(share), Now: now})
	require.NoError(t, err)
	assert.Empty(t, b.Surcharges)
	assert.Equal(t, "200", b.FinalAmount.String())

	b, err = c.Calculate(Input{Treatment: fixedTreatment(), BookingAt: evening, WorkingHours: eveningSurcharge(share), Now: now})
	require.NoError(t, err)
	require.Len(t, b.Surcharges, 1)
	assert.Equal(t, "20", b.Surcharges[0].ProfessionalShare.String())
	assert.Equal(t, "20", b.SurchargeProfessionalPayment.String())
	assert.Equal(t, "140", b.ProfessionalPayment.String())
	assert.Equal(t, "100", b.OperatorMargin.String())
	assertInvariants(t, b)
}

func TestCalculate_ZeroSurchargeDropped(t *testing.T) {
	cfg := eveningSurcharge(nil)
	fixed := cfg.Rules[0].(domain.FixedRule)
	fixed.Rule.Surcharge.Amount = domain.Amount{Value: decimal.Zero, Kind: domain.AmountFixed}
	cfg.Rules[0] = fixed

	b, err := newCalculator().Calculate(Input{Treatment: fixedTreatment(), BookingAt: evening, WorkingHours: cfg, Now: now})
	require.NoError(t, err)
	assert.Empty(t, b.Surcharges)
	assert.True(t, b.TotalSurcharges.IsZero())
}

func TestCalculate_TreatmentVoucher(t *testing.T) {
	c := newCalculator()
	voucher := &domain.Voucher{
		ID:          9,
		Code:        "SPA-DAY",
		Kind:        domain.VoucherTreatment,
		TreatmentID: ptr.Ptr(int64(2)),
		DurationID:  ptr.Ptr(int64(21)),
		Status:      domain.VoucherActive,
	}

	t.Run("covers base price, surcharge still due", func(t *testing.T) {
		b, err := c.Calculate(Input{
			Treatment:    durationTreatment(),
			DurationID:   ptr.Ptr(int64(21)),
			BookingAt:    clock.At(monday, types.MustTimeString("18:30")),
			WorkingHours: eveningSurcharge(nil),
			Instruments:  domain.Instruments{VoucherCode: ptr.Ptr("SPA-DAY"), Voucher: voucher},
			Now:          now,
		})
		require.NoError(t, err)
		assert.True(t, b.CoveredByTreatmentVoucher)
		assert.Equal(t, "210", b.VoucherApplied.String())
		assert.Equal(t, "210", b.PriceAfterCoverage.String())
		assert.Equal(t, "42", b.FinalAmount.String())
		assert.False(t, b.FullyCovered)
		assertInvariants(t, b)
	})

	t.Run("other duration does not match", func(t *testing.T) {
		_, err := c.Calculate(Input{
			Treatment:   durationTreatment(),
			DurationID:  ptr.Ptr(int64(20)),
			BookingAt:   morning,
			Instruments: domain.Instruments{VoucherCode: ptr.Ptr("SPA-DAY"), Voucher: voucher},
			Now:         now,
		})
		assert.ErrorIs(t, err, ErrVoucherMismatch)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ignored when subscription already covers", func(t *testing.T) {
		sub := activeSubscription()
		sub.DurationID = ptr.Ptr(int64(21))

		b, err := c.Calculate(Input{
			Treatment:       durationTreatment(),
			DurationID:      ptr.Ptr(int64(21)),
			BookingAt:       morning,
			Instruments:     domain.Instruments{Subscription: sub, VoucherCode: ptr.Ptr("SPA-DAY"), Voucher: voucher},
			RequesterUserID: ptr.Ptr(userID),
			Now:             now,
		})
		require.NoError(t, err)
		assert.True(t, b.CoveredBySubscription)
		assert.False(t, b.CoveredByTreatmentVoucher)
		assert.Nil(t, b.AppliedVoucherID)
		assert.True(t, b.VoucherApplied.IsZero())
		assertInvariants(t, b)
	})
}

func TestCalculate_MonetaryVoucherAfterSubscriptionPaysSurcharge(t *testing.T) {
	b, err := newCalculator().Calculate(Input{
		Treatment:       durationTreatment(),
		DurationID:      ptr.Ptr(int64(20)),
		BookingAt:       evening,
		WorkingHours:    eveningSurcharge(nil),
		Instruments:     domain.Instruments{Subscription: activeSubscription(), VoucherCode: ptr.Ptr("GIFT100"), Voucher: monetaryVoucher("100")},
		RequesterUserID: ptr.Ptr(userID),
		Now:             now,
	})
	require.NoError(t, err)

	assert.Equal(t, "30", b.TotalSurcharges.String())
	assert.Equal(t, "30", b.VoucherApplied.String())
	assert.True(t, b.FinalAmount.IsZero())
	assertInvariants(t, b)
}

func TestCalculate_Coupon(t *testing.T) {
	c := newCalculator()

	t.Run("percent of remaining balance", func(t *testing.T) {
		b, err := c.Calculate(Input{
			Treatment:    fixedTreatment(),
			BookingAt:    evening,
			WorkingHours: eveningSurcharge(nil),
			Instruments:  domain.Instruments{CouponCode: ptr.Ptr("SUMMER"), Coupon: percentCoupon("10")},
			Now:          now,
		})
		require.NoError(t, err)
		assert.Equal(t, "24", b.CouponDiscount.String())
		assert.Equal(t, "216", b.FinalAmount.String())
		assert.Equal(t, int64(11), *b.AppliedCouponID)
		assertInvariants(t, b)
	})

	t.Run("fixed coupon capped at balance", func(t *testing.T) {
		coupon := &domain.Coupon{ID: 12, Code: "BIG", Discount: domain.Amount{Value: dec("500"), Kind: domain.AmountFixed}, IsActive: true}
		b, err := c.Calculate(Input{
			Treatment:   fixedTreatment(),
			BookingAt:   morning,
			Instruments: domain.Instruments{CouponCode: ptr.Ptr("BIG"), Coupon: coupon},
			Now:         now,
		})
		require.NoError(t, err)
		assert.Equal(t, "200", b.CouponDiscount.String())
		assert.True(t, b.FullyCovered)
		assert.Equal(t, "-120", b.OperatorMargin.String())
		assertInvariants(t, b)
	})

	t.Run("never stacks with a voucher", func(t *testing.T) {
		b, err := c.Calculate(Input{
			Treatment: fixedTreatment(),
			BookingAt: morning,
			Instruments: domain.Instruments{
				VoucherCode: ptr.Ptr("GIFT100"),
				Voucher:     monetaryVoucher("50"),
				CouponCode:  ptr.Ptr("SUMMER"),
				Coupon:      percentCoupon("10"),
			},
			Now: now,
		})
		require.NoError(t, err)
		assert.True(t, b.CouponDiscount.IsZero())
		assert.Nil(t, b.AppliedCouponID)
		assert.Equal(t, "150", b.FinalAmount.String())
		assertInvariants(t, b)
	})

	t.Run("never stacks with a subscription", func(t *testing.T) {
		b, err := c.Calculate(Input{
			Treatment:       durationTreatment(),
			DurationID:      ptr.Ptr(int64(20)),
			BookingAt:       evening,
			WorkingHours:    eveningSurcharge(nil),
			Instruments:     domain.Instruments{Subscription: activeSubscription(), CouponCode: ptr.Ptr("SUMMER"), Coupon: percentCoupon("50")},
			RequesterUserID: ptr.Ptr(userID),
			Now:             now,
		})
		require.NoError(t, err)
		assert.Nil(t, b.AppliedCouponID)
		assert.Equal(t, "30", b.FinalAmount.String())
	})
}

func TestCalculate_Errors(t *testing.T) {
	expired := monetaryVoucher("100")
	expired.ExpiresAt = ptr.Ptr(now.Add(-time.Hour))

	depleted := activeSubscription()
	depleted.RemainingQuantity = 0

	paused := activeSubscription()
	paused.Status = domain.SubscriptionPaused

	foreign := activeSubscription()
	foreign.UserID = 7

	otherDuration := activeSubscription()
	otherDuration.DurationID = ptr.Ptr(int64(21))

	exhausted := percentCoupon("10")
	exhausted.UsageLimit = ptr.Ptr(100)
	exhausted.UsedCount = 100

	perUser := percentCoupon("10")
	perUser.PerUserLimit = ptr.Ptr(1)

	minimum := percentCoupon("10")
	minimum.MinAmount = ptr.Ptr(dec("500"))

	otherTreatment := percentCoupon("10")
	otherTreatment.TreatmentIDs = []int64{99}

	notStarted := percentCoupon("10")
	notStarted.ValidFrom = ptr.Ptr(now.Add(time.Hour))

	inactive := fixedTreatment()
	inactive.IsActive = false

	tests := []struct {
		name     string
		in       Input
		wantErr  error
		wantKind error
	}{
		{
			name:     "no treatment",
			in:       Input{BookingAt: morning, Now: now},
			wantErr:  ErrTreatmentRequired,
			wantKind: domain.ErrInvalidInput,
		},
		{
			name:     "inactive treatment",
			in:       Input{Treatment: inactive, BookingAt: morning, Now: now},
			wantErr:  ErrTreatmentInactive,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "duration required",
			in:       Input{Treatment: durationTreatment(), BookingAt: morning, Now: now},
			wantErr:  domain.ErrDurationRequired,
			wantKind: domain.ErrInvalidInput,
		},
		{
			name:     "unknown duration",
			in:       Input{Treatment: durationTreatment(), DurationID: ptr.Ptr(int64(77)), BookingAt: morning, Now: now},
			wantErr:  domain.ErrDurationNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "subscription without requester",
			in:       Input{Treatment: durationTreatment(), DurationID: ptr.Ptr(int64(20)), BookingAt: morning, Instruments: domain.Instruments{Subscription: activeSubscription()}, Now: now},
			wantErr:  ErrRequesterRequired,
			wantKind: domain.ErrInvalidInput,
		},
		{
			name:     "depleted subscription",
			in:       subscriptionInput(depleted),
			wantErr:  ErrSubscriptionDepleted,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "paused subscription",
			in:       subscriptionInput(paused),
			wantErr:  ErrSubscriptionInactive,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "foreign subscription",
			in:       subscriptionInput(foreign),
			wantErr:  ErrSubscriptionNotOwned,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "subscription for another duration",
			in:       subscriptionInput(otherDuration),
			wantErr:  ErrSubscriptionMismatch,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "unresolved voucher code",
			in:       Input{Treatment: fixedTreatment(), BookingAt: morning, Instruments: domain.Instruments{VoucherCode: ptr.Ptr("NOPE")}, Now: now},
			wantErr:  ErrVoucherNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "expired voucher",
			in:       Input{Treatment: fixedTreatment(), BookingAt: morning, Instruments: domain.Instruments{VoucherCode: ptr.Ptr("GIFT100"), Voucher: expired}, Now: now},
			wantErr:  ErrVoucherExpired,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "empty monetary voucher",
			in:       Input{Treatment: fixedTreatment(), BookingAt: morning, Instruments: domain.Instruments{VoucherCode: ptr.Ptr("GIFT100"), Voucher: monetaryVoucher("0")}, Now: now},
			wantErr:  ErrVoucherDepleted,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "unresolved coupon code",
			in:       couponInput(nil, 0),
			wantErr:  ErrCouponNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name:     "coupon usage limit",
			in:       couponInput(exhausted, 0),
			wantErr:  ErrCouponUsageLimit,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "coupon per-user limit",
			in:       couponInput(perUser, 1),
			wantErr:  ErrCouponUserLimit,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "coupon minimum amount",
			in:       couponInput(minimum, 0),
			wantErr:  ErrCouponMinAmount,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "coupon for another treatment",
			in:       couponInput(otherTreatment, 0),
			wantErr:  ErrCouponNotApplicable,
			wantKind: domain.ErrStateConflict,
		},
		{
			name:     "coupon not started",
			in:       couponInput(notStarted, 0),
			wantErr:  ErrCouponNotStarted,
			wantKind: domain.ErrStateConflict,
		},
	}

	c := newCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := c.Calculate(tt.in)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	c := newCalculator()
	in := Input{
		Treatment:    fixedTreatment(),
		BookingAt:    evening,
		WorkingHours: eveningSurcharge(&domain.Amount{Value: dec("10"), Kind: domain.AmountFixed}),
		Instruments:  domain.Instruments{CouponCode: ptr.Ptr("SUMMER"), Coupon: percentCoupon("15")},
		Now:          now,
	}

	first, err := c.Calculate(in)
	require.NoError(t, err)
	second, err := c.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func subscriptionInput(sub *domain.Subscription) Input {
	return Input{
		Treatment:       durationTreatment(),
		DurationID:      ptr.Ptr(int64(20)),
		BookingAt:       morning,
		Instruments:     domain.Instruments{Subscription: sub},
		RequesterUserID: ptr.Ptr(userID),
		Now:             now,
	}
}

func couponInput(coupon *domain.Coupon, uses int) Input {
	return Input{
		Treatment:       fixedTreatment(),
		BookingAt:       morning,
		Instruments:     domain.Instruments{CouponCode: ptr.Ptr("SUMMER"), Coupon: coupon, CouponUsesByUser: uses},
		RequesterUserID: ptr.Ptr(userID),
		Now:             now,
	}
}
