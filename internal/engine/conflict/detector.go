// Package conflict decides whether time windows collide.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Result of a conflict check
type Result struct {
	HasConflict bool
	Conflicting []domain.Reservation // ordered by start
}

// Detector checks a candidate window against existing reservations
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Check reports every active reservation that overlaps
// [start, start+durationMinutes). The reservation with excludeID, if given, is
// ignored so a booking can be moved without colliding with itself.
func (d *Detector) Check(start time.Time, durationMinutes int, reservations []domain.Reservation, excludeID *int64) (Result, error) {
	if durationMinutes <= 0 {
		return Result{}, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidInput, durationMinutes)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	conflicting := make([]domain.Reservation, 0)

	for _, r := range Blocking(reservations, excludeID) {
		if Overlaps(start, end, r.StartAt, r.EndAt()) {
			conflicting = append(conflicting, r)
		}
	}

	sort.SliceStable(conflicting, func(i, j int) bool {
		return conflicting[i].StartAt.Before(conflicting[j].StartAt)
	})

	return Result{HasConflict: len(conflicting) > 0, Conflicting: conflicting}, nil
}

// Blocking drops terminal reservations and the excluded one.
func Blocking(reservations []domain.Reservation, excludeID *int64) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AnyOverlap reports whether [start, end) overlaps any of the given
// reservations. The caller is expected to have filtered them with Blocking.
func AnyOverlap(start, end time.Time, reservations []domain.Reservation) bool {
	for _, r := range reservations {
		if Overlaps(start, end, r.StartAt, r.EndAt()) {
			return true
		}
	}
	return false
}
