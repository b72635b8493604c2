package domain

import "github.com/m04kA/SMC-BookingEngine/pkg/types"

// TimeSlot is a bookable start time on a given date, in the service zone
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}
