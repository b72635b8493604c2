package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingType defines how a treatment's price is determined
type PricingType string

const (
	PricingFixed         PricingType = "fixed"
	PricingDurationBased PricingType = "duration_based"
)

// Treatment is a bookable service
type Treatment struct {
	ID                     int64
	Name                   string
	PricingType            PricingType
	FixedPrice             *decimal.Decimal
	FixedProfessionalPrice *decimal.Decimal
	DefaultDurationMinutes *int
	Durations              []TreatmentDuration
	IsActive               bool
}

// TreatmentDuration is one priced length of a duration-based treatment
type TreatmentDuration struct {
	ID                int64
	TreatmentID       int64
	Minutes           int
	Price             decimal.Decimal
	ProfessionalPrice decimal.Decimal
	IsActive          bool
}

// IsDurationBased returns true if the price depends on the selected duration
func (t *Treatment) IsDurationBased() bool {
	return t.PricingType == PricingDurationBased
}

// ActiveDuration looks up an active duration variant by id
func (t *Treatment) ActiveDuration(id int64) (*TreatmentDuration, bool) {
	for i := range t.Durations {
		if t.Durations[i].ID == id && t.Durations[i].IsActive {
			return &t.Durations[i], true
		}
	}
	return nil, false
}

// Selection is a treatment resolved against an optional duration id
type Selection struct {
	Duration          *TreatmentDuration // nil for fixed-price treatments
	Minutes           int                // 0 when a fixed treatment has no default duration
	Price             decimal.Decimal
	ProfessionalPrice decimal.Decimal
}

// Select resolves price, professional rate and length for the chosen duration.
// Fixed-price treatments ignore durationID.
func (t *Treatment) Select(durationID *int64) (Selection, error) {
	if !t.IsDurationBased() {
		if t.FixedPrice == nil {
			return Selection{}, fmt.Errorf("%w: treatment id=%d", ErrFixedPriceMissing, t.ID)
		}
		sel := Selection{Price: *t.FixedPrice}
		if t.FixedProfessionalPrice != nil {
			sel.ProfessionalPrice = *t.FixedProfessionalPrice
		}
		if t.DefaultDurationMinutes != nil {
			sel.Minutes = *t.DefaultDurationMinutes
		}
		return sel, nil
	}

	if durationID == nil {
		return Selection{}, fmt.Errorf("%w: treatment id=%d", ErrDurationRequired, t.ID)
	}

	d, ok := t.ActiveDuration(*durationID)
	if !ok {
		return Selection{}, fmt.Errorf("%w: treatment id=%d, duration id=%d", ErrDurationNotFound, t.ID, *durationID)
	}

	return Selection{
		Duration:          d,
		Minutes:           d.Minutes,
		Price:             d.Price,
		ProfessionalPrice: d.ProfessionalPrice,
	}, nil
}

var (
	ErrDurationRequired  = fmt.Errorf("%w: duration is required for a duration-based treatment", ErrInvalidInput)
	ErrDurationNotFound  = fmt.Errorf("%w: duration not found or inactive", ErrNotFound)
	ErrFixedPriceMissing = fmt.Errorf("%w: fixed-price treatment has no price", ErrInvalidInput)
)
