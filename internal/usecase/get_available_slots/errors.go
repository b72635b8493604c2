package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

var (
	// ErrTreatmentNotFound возвращается, когда процедура не найдена
	ErrTreatmentNotFound = fmt.Errorf("%w: get_available_slots: treatment not found", domain.ErrNotFound)

	// ErrTreatmentInactive возвращается, когда процедура снята с записи
	ErrTreatmentInactive = fmt.Errorf("%w: get_available_slots: treatment is not active", domain.ErrStateConflict)

	// ErrDurationUnknown возвращается, когда у процедуры не задана длительность
	ErrDurationUnknown = fmt.Errorf("%w: get_available_slots: treatment has no duration", domain.ErrInvalidInput)

	// ErrDateInPast возвращается при запросе слотов на прошедшую дату
	ErrDateInPast = fmt.Errorf("%w: get_available_slots: date is in the past", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
