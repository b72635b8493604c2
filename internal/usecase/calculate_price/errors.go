package calculate_price

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = fmt.Errorf("%w: calculate_price: treatment not found", domain.ErrNotFound)

	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = fmt.Errorf("%w: calculate_price: subscription not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: calculate_price", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_price: internal error")
)
