package hold_slot

import (
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

var endOfDay = types.MustTimeString("24:00")

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}

	if req.DurationID != nil && *req.DurationID <= 0 {
		return fmt.Errorf("%w: durationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.StartTime.IsBefore(endOfDay) {
		return fmt.Errorf("%w: startTime must be before 24:00", ErrInvalidInput)
	}

	return nil
}
