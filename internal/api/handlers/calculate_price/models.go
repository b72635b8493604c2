package calculate_price

import (
	"time"

	"github.com/shopspring/decimal"

	calculatePrice "github.com/m04kA/SMC-BookingEngine/internal/usecase/calculate_price"
)

// CalculatePriceRequest HTTP request model
type CalculatePriceRequest struct {
	TreatmentID    int64     `json:"treatmentId"`
	DurationID     *int64    `json:"durationId,omitempty"`
	BookingAt      time.Time `json:"bookingAt"` // RFC3339
	SubscriptionID *int64    `json:"subscriptionId,omitempty"`
	VoucherCode    *string   `json:"voucherCode,omitempty"`
	CouponCode     *string   `json:"couponCode,omitempty"`
}

// PriceBreakdownResponse HTTP response model. Суммы сериализуются строками.
type PriceBreakdownResponse struct {
	TreatmentID        int64                   `json:"treatmentId"`
	DurationID         *int64                  `json:"durationId,omitempty"`
	BookingAt          time.Time               `json:"bookingAt"`
	BasePrice          decimal.Decimal         `json:"basePrice"`
	Surcharges         []SurchargeLineResponse `json:"surcharges"`
	TotalSurcharges    decimal.Decimal         `json:"totalSurcharges"`
	PriceAfterCoverage decimal.Decimal         `json:"priceAfterCoverage"`
	CouponDiscount     decimal.Decimal         `json:"couponDiscount"`
	VoucherApplied     decimal.Decimal         `json:"voucherApplied"`
	FinalAmount        decimal.Decimal         `json:"finalAmount"`

	CoveredBySubscription     bool `json:"coveredBySubscription"`
	CoveredByTreatmentVoucher bool `json:"coveredByTreatmentVoucher"`
	FullyCovered              bool `json:"fullyCovered"`

	RedeemedSubscriptionID *int64 `json:"redeemedSubscriptionId,omitempty"`
	AppliedVoucherID       *int64 `json:"appliedVoucherId,omitempty"`
	AppliedCouponID        *int64 `json:"appliedCouponId,omitempty"`

	ProfessionalPayment          decimal.Decimal `json:"professionalPayment"`
	OperatorMargin               decimal.Decimal `json:"operatorMargin"`
	BaseProfessionalPayment      decimal.Decimal `json:"baseProfessionalPayment"`
	SurchargeProfessionalPayment decimal.Decimal `json:"surchargeProfessionalPayment"`
}

// SurchargeLineResponse строка надбавки
type SurchargeLineResponse struct {
	Description       string           `json:"description"`
	Amount            decimal.Decimal  `json:"amount"`
	ProfessionalShare *decimal.Decimal `json:"professionalShare,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CalculatePriceRequest) ToUseCaseRequest(requesterUserID *int64) *calculatePrice.Request {
	return &calculatePrice.Request{
		TreatmentID:     r.TreatmentID,
		DurationID:      r.DurationID,
		BookingAt:       r.BookingAt,
		SubscriptionID:  r.SubscriptionID,
		VoucherCode:     r.VoucherCode,
		CouponCode:      r.CouponCode,
		RequesterUserID: requesterUserID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculatePrice.Response) *PriceBreakdownResponse {
	b := resp.Breakdown

	surcharges := make([]SurchargeLineResponse, len(b.Surcharges))
	for i, line := range b.Surcharges {
		surcharges[i] = SurchargeLineResponse{
			Description:       line.Description,
			Amount:            line.Amount,
			ProfessionalShare: line.ProfessionalShare,
		}
	}

	return &PriceBreakdownResponse{
		TreatmentID:                  resp.TreatmentID,
		DurationID:                   resp.DurationID,
		BookingAt:                    resp.BookingAt,
		BasePrice:                    b.BasePrice,
		Surcharges:                   surcharges,
		TotalSurcharges:              b.TotalSurcharges,
		PriceAfterCoverage:           b.PriceAfterCoverage,
		CouponDiscount:               b.CouponDiscount,
		VoucherApplied:               b.VoucherApplied,
		FinalAmount:                  b.FinalAmount,
		CoveredBySubscription:        b.CoveredBySubscription,
		CoveredByTreatmentVoucher:    b.CoveredByTreatmentVoucher,
		FullyCovered:                 b.FullyCovered,
		RedeemedSubscriptionID:       b.RedeemedSubscriptionID,
		AppliedVoucherID:             b.AppliedVoucherID,
		AppliedCouponID:              b.AppliedCouponID,
		ProfessionalPayment:          b.ProfessionalPayment,
		OperatorMargin:               b.OperatorMargin,
		BaseProfessionalPayment:      b.BaseProfessionalPayment,
		SurchargeProfessionalPayment: b.SurchargeProfessionalPayment,
	}
}
