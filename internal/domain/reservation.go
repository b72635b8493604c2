package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationNoShow    ReservationStatus = "no_show"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRefunded  ReservationStatus = "refunded"
	ReservationAbandoned ReservationStatus = "abandoned" // hold expired before confirmation
)

// Reservation is a booked (or held) time window
type Reservation struct {
	ID              int64
	UserID          int64
	TreatmentID     int64
	DurationID      *int64
	StartAt         time.Time
	DurationMinutes int
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EndAt returns the exclusive end of the reservation.
func (r *Reservation) EndAt() time.Time {
	return r.StartAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsActive returns true if the reservation still occupies its time window
func (r *Reservation) IsActive() bool {
	return !r.Status.IsTerminal()
}

// IsTerminal reports whether a reservation in this status no longer blocks a slot
func (s ReservationStatus) IsTerminal() bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// ReservationWindowFilter selects reservations that may intersect [From, To)
type ReservationWindowFilter struct {
	From            time.Time
	To              time.Time
	IncludeInactive bool
}
