package hold_slot

import (
	"time"

	holdSlot "github.com/m04kA/SMC-BookingEngine/internal/usecase/hold_slot"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// HoldSlotRequest HTTP request model
type HoldSlotRequest struct {
	TreatmentID int64  `json:"treatmentId"`
	DurationID  *int64 `json:"durationId,omitempty"`
	Date        string `json:"date"`      // "2025-10-15"
	StartTime   string `json:"startTime"` // "10:00"
}

// HoldResponse HTTP response model
type HoldResponse struct {
	HoldID          string    `json:"holdId"`
	ReservationID   int64     `json:"reservationId"`
	TreatmentID     int64     `json:"treatmentId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *HoldSlotRequest) ToUseCaseRequest(userID int64) (*holdSlot.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &holdSlot.Request{
		UserID:      userID,
		TreatmentID: r.TreatmentID,
		DurationID:  r.DurationID,
		Date:        date,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *holdSlot.Response) *HoldResponse {
	return &HoldResponse{
		HoldID:          resp.HoldID,
		ReservationID:   resp.ReservationID,
		TreatmentID:     resp.TreatmentID,
		StartAt:         resp.StartAt,
		DurationMinutes: resp.DurationMinutes,
		ExpiresAt:       resp.ExpiresAt,
	}
}
