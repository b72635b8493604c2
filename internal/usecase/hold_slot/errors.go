package hold_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = fmt.Errorf("%w: hold_slot: treatment not found", domain.ErrNotFound)

	// ErrTreatmentInactive возвращается, когда процедура снята с продажи
	ErrTreatmentInactive = fmt.Errorf("%w: hold_slot: treatment is not active", domain.ErrStateConflict)

	// ErrSlotNotAvailable возвращается, когда выбранное время уже недоступно
	ErrSlotNotAvailable = fmt.Errorf("%w: hold_slot: slot is not available", domain.ErrStateConflict)

	// ErrDurationUnknown возвращается, когда у процедуры нет длительности
	ErrDurationUnknown = fmt.Errorf("%w: hold_slot: treatment has no duration", domain.ErrInvalidInput)

	// ErrDateInPast возвращается для даты в прошлом
	ErrDateInPast = fmt.Errorf("%w: hold_slot: date is in the past", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: hold_slot", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("hold_slot: internal error")
)
