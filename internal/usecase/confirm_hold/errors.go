package confirm_hold

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrHoldNotFound возвращается, когда удержание не найдено, истекло или принадлежит другому пользователю
	ErrHoldNotFound = fmt.Errorf("%w: confirm_hold: hold not found", domain.ErrNotFound)

	// ErrReservationNotFound возвращается, когда резерв удержания не найден
	ErrReservationNotFound = fmt.Errorf("%w: confirm_hold: reservation not found", domain.ErrNotFound)

	// ErrReservationNotPending возвращается, когда резерв уже не ожидает подтверждения
	ErrReservationNotPending = fmt.Errorf("%w: confirm_hold: reservation is not pending", domain.ErrStateConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: confirm_hold", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_hold: internal error")
)
