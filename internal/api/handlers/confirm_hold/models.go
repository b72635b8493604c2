package confirm_hold

import (
	"time"

	confirmHold "github.com/m04kA/SMC-BookingEngine/internal/usecase/confirm_hold"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64     `json:"id"`
	TreatmentID     int64     `json:"treatmentId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmHold.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ReservationID,
		TreatmentID:     resp.TreatmentID,
		StartAt:         resp.StartAt,
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
	}
}
