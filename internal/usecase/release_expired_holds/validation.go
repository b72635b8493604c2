package release_expired_holds

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}
	return nil
}
