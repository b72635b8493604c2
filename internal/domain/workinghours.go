package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// AmountKind tells whether an Amount is an absolute sum or a percentage
type AmountKind string

const (
	AmountFixed   AmountKind = "fixed"
	AmountPercent AmountKind = "percent"
)

// Amount is either a fixed sum or a percentage of some base
type Amount struct {
	Value decimal.Decimal
	Kind  AmountKind
}

// Of applies the amount to base. Percent results are rounded to MoneyPlaces.
func (a Amount) Of(base decimal.Decimal) decimal.Decimal {
	if a.Kind == AmountPercent {
		return base.Mul(a.Value).Div(decimal.NewFromInt(100)).Round(MoneyPlaces)
	}
	return a.Value
}

// TimeRange is a half-open wall-clock interval [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether t falls inside the range. A range whose end is
// before its start wraps past midnight.
func (r TimeRange) Contains(t types.TimeString) bool {
	if r.End.IsBefore(r.Start) {
		return !t.IsBefore(r.Start) || t.IsBefore(r.End)
	}
	return !t.IsBefore(r.Start) && t.IsBefore(r.End)
}

// Surcharge is an extra charge attached to a day rule
type Surcharge struct {
	Description       string
	Amount            Amount
	TimeRange         *TimeRange // nil = all day
	ProfessionalShare *Amount    // percent is taken of the surcharge amount
}

// RuleOrigin names the configuration layer a day rule was resolved from
type RuleOrigin string

const (
	OriginSpecialEvent RuleOrigin = "special_event"
	OriginSpecialDate  RuleOrigin = "special_date"
	OriginFixedRule    RuleOrigin = "fixed_rule"
)

// DayRule is the resolved working-hours policy for one calendar date
type DayRule struct {
	IsActive       bool
	WorkingPeriods []TimeRange
	CutoffTime     *types.TimeString
	HasSurcharge   bool
	Surcharge      *Surcharge
	Notes          *string
	Origin         RuleOrigin
}

// ActiveSurcharge returns the surcharge if the rule enables one
func (r *DayRule) ActiveSurcharge() (*Surcharge, bool) {
	if r == nil || !r.HasSurcharge || r.Surcharge == nil {
		return nil, false
	}
	return r.Surcharge, true
}

// Clone returns a deep copy so a resolved rule never aliases configuration
func (r DayRule) Clone() DayRule {
	out := r
	out.WorkingPeriods = append([]TimeRange(nil), r.WorkingPeriods...)
	if r.CutoffTime != nil {
		c := *r.CutoffTime
		out.CutoffTime = &c
	}
	if r.Notes != nil {
		n := *r.Notes
		out.Notes = &n
	}
	if r.Surcharge != nil {
		s := *r.Surcharge
		if s.TimeRange != nil {
			tr := *s.TimeRange
			s.TimeRange = &tr
		}
		if s.ProfessionalShare != nil {
			ps := *s.ProfessionalShare
			s.ProfessionalShare = &ps
		}
		out.Surcharge = &s
	}
	return out
}

// RuleEntry is one entry of a working-hours configuration. The set of
// implementations is closed: SpecialEvent, SpecialDate and FixedRule.
type RuleEntry interface {
	DayRule() DayRule
	ruleEntry()
}

// SpecialEvent is a named rule applied on a set of dates (holidays, events).
// When several events list the same date the highest Priority wins, then the
// earliest declared.
type SpecialEvent struct {
	Name     string
	Dates    []types.Date
	Priority int
	Rule     DayRule
}

// SpecialDate is a legacy single-date override
type SpecialDate struct {
	Date types.Date
	Rule DayRule
}

// FixedRule is the weekly rule for one weekday, 0 = Sunday
type FixedRule struct {
	Weekday int
	Rule    DayRule
}

func (e SpecialEvent) DayRule() DayRule { return e.Rule }
func (e SpecialDate) DayRule() DayRule  { return e.Rule }
func (e FixedRule) DayRule() DayRule    { return e.Rule }

func (SpecialEvent) ruleEntry() {}
func (SpecialDate) ruleEntry()  {}
func (FixedRule) ruleEntry()    {}

// Covers reports whether the event lists d
func (e SpecialEvent) Covers(d types.Date) bool {
	for _, date := range e.Dates {
		if date.Equal(d) {
			return true
		}
	}
	return false
}

// WorkingHoursConfig is the ordered working-hours configuration
type WorkingHoursConfig struct {
	Rules []RuleEntry
}
