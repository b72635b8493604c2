// Package workinghours resolves the day rule that applies to a calendar date.
package workinghours

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Resolver picks the applicable day rule. Layers are checked in a fixed order:
// special events, then legacy special dates, then the weekly rule. The first
// layer with a match wins.
type Resolver struct {
	clock *servicetime.Clock
}

func NewResolver(clock *servicetime.Clock) *Resolver {
	return &Resolver{clock: clock}
}

// ResolveDay returns the rule for date, or nil when nothing matches (closed).
// The returned rule is a copy and may be modified by the caller.
func (r *Resolver) ResolveDay(date types.Date, cfg *domain.WorkingHoursConfig) *domain.DayRule {
	if cfg == nil {
		return nil
	}

	var (
		event   *domain.SpecialEvent
		special *domain.SpecialDate
		fixed   *domain.FixedRule
	)
	weekday := int(date.Weekday())

	for _, entry := range cfg.Rules {
		switch e := entry.(type) {
		case domain.SpecialEvent:
			// strictly greater keeps the earliest declared event on equal priority
			if e.Covers(date) && (event == nil || e.Priority > event.Priority) {
				event = &e
			}
		case domain.SpecialDate:
			if special == nil && e.Date.Equal(date) {
				special = &e
			}
		case domain.FixedRule:
			if fixed == nil && e.Weekday == weekday {
				fixed = &e
			}
		}
	}

	switch {
	case event != nil:
		return withOrigin(event.Rule, domain.OriginSpecialEvent)
	case special != nil:
		return withOrigin(special.Rule, domain.OriginSpecialDate)
	case fixed != nil:
		return withOrigin(fixed.Rule, domain.OriginFixedRule)
	default:
		return nil
	}
}

// ResolveAt resolves the rule for the service-local calendar day of instant.
func (r *Resolver) ResolveAt(instant time.Time, cfg *domain.WorkingHoursConfig) *domain.DayRule {
	return r.ResolveDay(r.clock.CalendarDay(instant), cfg)
}

func withOrigin(rule domain.DayRule, origin domain.RuleOrigin) *domain.DayRule {
	out := rule.Clone()
	out.Origin = origin
	return &out
}
