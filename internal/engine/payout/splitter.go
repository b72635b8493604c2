// Package payout splits what a booking earns between the professional and the operator.
package payout

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Split is the professional/operator division of one booking
type Split struct {
	ProfessionalPayment          decimal.Decimal
	OperatorMargin               decimal.Decimal
	BaseProfessionalPayment      decimal.Decimal
	SurchargeProfessionalPayment decimal.Decimal
}

// Splitter computes payouts. The professional is paid their configured rate no
// matter what the customer paid, so the margin goes negative on covered bookings.
type Splitter struct{}

func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split computes the payout for a finished breakdown. The margin is never clamped.
func (s *Splitter) Split(treatment *domain.Treatment, durationID *int64, breakdown *domain.PriceBreakdown) (Split, error) {
	sel, err := treatment.Select(durationID)
	if err != nil {
		return Split{}, err
	}

	surchargeShare := decimal.Zero
	for _, line := range breakdown.Surcharges {
		if line.ProfessionalShare != nil {
			surchargeShare = surchargeShare.Add(*line.ProfessionalShare)
		}
	}

	professional := sel.ProfessionalPrice.Add(surchargeShare)

	return Split{
		ProfessionalPayment:          professional,
		OperatorMargin:               breakdown.FinalAmount.Sub(professional),
		BaseProfessionalPayment:      sel.ProfessionalPrice,
		SurchargeProfessionalPayment: surchargeShare,
	}, nil
}

// Apply copies the split into the breakdown
func (sp Split) Apply(b *domain.PriceBreakdown) {
	b.ProfessionalPayment = sp.ProfessionalPayment
	b.OperatorMargin = sp.OperatorMargin
	b.BaseProfessionalPayment = sp.BaseProfessionalPayment
	b.SurchargeProfessionalPayment = sp.SurchargeProfessionalPayment
}
