package check_conflicts

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.ExcludeReservationID != nil && *req.ExcludeReservationID <= 0 {
		return fmt.Errorf("%w: excludeReservationId must be positive", ErrInvalidInput)
	}

	return nil
}
