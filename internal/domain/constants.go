package domain

// Slot generation
const (
	// MaxSlotStepMinutes caps the distance between two candidate slot starts.
	MaxSlotStepMinutes = 30

	NoteClosed       = "closed"
	NoteCutoffPassed = "booking for today is closed: cutoff time has passed"
)

// Money
const (
	// MoneyPlaces is the number of fractional digits kept after percent maths.
	MoneyPlaces = 2
)

// Holds
const (
	DefaultHoldTTLMinutes = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses statuses that never block a slot
var TerminalStatuses = []ReservationStatus{
	ReservationCancelled,
	ReservationRefunded,
	ReservationAbandoned,
}
