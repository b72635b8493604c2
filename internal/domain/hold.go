package domain

import "time"

// Hold is a short-lived claim on a pending reservation. If it is not confirmed
// before ExpiresAt the reservation is abandoned and the slot freed.
type Hold struct {
	ID            string    `json:"id"`
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId"`
	TreatmentID   int64     `json:"treatmentId"`
	StartAt       time.Time `json:"startAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// IsExpired reports whether the hold lapsed at now
func (h *Hold) IsExpired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}
