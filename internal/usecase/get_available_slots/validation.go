package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TreatmentID <= 0 {
		return fmt.Errorf("%w: treatmentID must be positive", ErrInvalidInput)
	}

	if req.DurationID != nil && *req.DurationID <= 0 {
		return fmt.Errorf("%w: durationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
