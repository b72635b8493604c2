// Package slots builds the list of bookable start times for a day.
package slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/conflict"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Result is the generated slot list plus a note for the customer
type Result struct {
	Slots []domain.TimeSlot
	Note  *string
}

// Generator steps through the working periods of a day rule and keeps the
// candidates that are in the future and free of conflicts.
type Generator struct {
	clock *servicetime.Clock
}

func NewGenerator(clock *servicetime.Clock) *Generator {
	return &Generator{clock: clock}
}

// Generate returns the available slots for date. Slots are ordered by time of
// day. A closed day or a passed cutoff yields an empty list and a note.
func (g *Generator) Generate(
	date types.Date,
	durationMinutes int,
	rule *domain.DayRule,
	reservations []domain.Reservation,
	now time.Time,
) (Result, error) {
	if durationMinutes <= 0 {
		return Result{}, fmt.Errorf("%w: treatment duration must be positive, got %d", domain.ErrInvalidInput, durationMinutes)
	}

	if rule == nil || !rule.IsActive {
		note := domain.NoteClosed
		if rule != nil && rule.Notes != nil {
			note = *rule.Notes
		}
		return Result{Slots: []domain.TimeSlot{}, Note: &note}, nil
	}

	isToday := g.clock.IsToday(date, now)

	if isToday && rule.CutoffTime != nil && !g.clock.TimeOfDay(now).IsBefore(*rule.CutoffTime) {
		note := domain.NoteCutoffPassed
		return Result{Slots: []domain.TimeSlot{}, Note: &note}, nil
	}

	step := min(domain.MaxSlotStepMinutes, durationMinutes)
	blocking := conflict.Blocking(reservations, nil)
	length := time.Duration(durationMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0)
	for _, p := range rule.WorkingPeriods {
		for t := p.Start.Minutes(); t+durationMinutes <= p.End.Minutes(); t += step {
			ts, err := types.NewTimeStringFromMinutes(t)
			if err != nil {
				return Result{}, fmt.Errorf("%w: working period %s-%s: %v", domain.ErrInvalidInput, p.Start, p.End, err)
			}

			start := g.clock.At(date, ts)
			if isToday && !start.After(now) {
				continue
			}
			if conflict.AnyOverlap(start, start.Add(length), blocking) {
				continue
			}

			slots = append(slots, domain.TimeSlot{Time: ts, Available: true})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Time.String() < slots[j].Time.String()
	})

	return Result{Slots: slots, Note: rule.Notes}, nil
}

// Contains reports whether ts is one of the generated slots.
func (r Result) Contains(ts types.TimeString) bool {
	for _, s := range r.Slots {
		if s.Available && s.Time.Equal(ts) {
			return true
		}
	}
	return false
}
