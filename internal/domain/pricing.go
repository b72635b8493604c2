package domain

import "github.com/shopspring/decimal"

// SurchargeLine is one itemised surcharge of a price breakdown
type SurchargeLine struct {
	Description       string
	Amount            decimal.Decimal
	ProfessionalShare *decimal.Decimal
}

// PriceBreakdown is the fully itemised result of a price calculation.
//
//	FinalAmount    = max(0, PriceAfterCoverage + TotalSurcharges - CouponDiscount - VoucherApplied)
//	OperatorMargin = FinalAmount - ProfessionalPayment (may be negative)
type PriceBreakdown struct {
	BasePrice          decimal.Decimal
	Surcharges         []SurchargeLine
	TotalSurcharges    decimal.Decimal
	PriceAfterCoverage decimal.Decimal
	CouponDiscount     decimal.Decimal
	VoucherApplied     decimal.Decimal
	FinalAmount        decimal.Decimal

	CoveredBySubscription     bool
	CoveredByTreatmentVoucher bool
	FullyCovered              bool

	RedeemedSubscriptionID *int64
	AppliedVoucherID       *int64
	AppliedCouponID        *int64

	ProfessionalPayment          decimal.Decimal
	OperatorMargin               decimal.Decimal
	BaseProfessionalPayment      decimal.Decimal
	SurchargeProfessionalPayment decimal.Decimal
}

// IsSubsidised returns true when the operator pays more than it collects
func (b *PriceBreakdown) IsSubsidised() bool {
	return b.OperatorMargin.IsNegative()
}
