package confirm_hold

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.HoldID) == "" {
		return fmt.Errorf("%w: holdID is required", ErrInvalidInput)
	}

	return nil
}
