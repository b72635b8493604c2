package get_available_slots

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TreatmentID int64      // ID процедуры
	DurationID  *int64     // ID варианта длительности (для процедур с ценой по длительности)
	Date        types.Date // Календарная дата в часовом поясе сервиса
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            types.Date
	TreatmentID     int64
	DurationMinutes int
	Slots           []domain.TimeSlot
	Note            *string            // Причина пустого списка (выходной, прошло время отсечки)
	RuleOrigin      *domain.RuleOrigin // Откуда взято правило дня, nil если правила нет
}
