package check_conflicts

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_conflicts", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
