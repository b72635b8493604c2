package get_available_slots

import (
	"strconv"

	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	TreatmentID     int64           `json:"treatmentId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Note            *string         `json:"note,omitempty"`
	RuleOrigin      *string         `json:"ruleOrigin,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	out := &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		TreatmentID:     resp.TreatmentID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Note:            resp.Note,
	}
	if resp.RuleOrigin != nil {
		origin := string(*resp.RuleOrigin)
		out.RuleOrigin = &origin
	}
	return out
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(treatmentID int64, dateStr, durationIDStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		TreatmentID: treatmentID,
		Date:        date,
	}

	if durationIDStr != "" {
		durationID, err := strconv.ParseInt(durationIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.DurationID = &durationID
	}

	return req, nil
}
