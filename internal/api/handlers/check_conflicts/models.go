package check_conflicts

import (
	"time"

	checkConflicts "github.com/m04kA/SMC-BookingEngine/internal/usecase/check_conflicts"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	StartAt              time.Time `json:"startAt"` // RFC3339
	DurationMinutes      int       `json:"durationMinutes"`
	ExcludeReservationID *int64    `json:"excludeReservationId,omitempty"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflict bool                  `json:"hasConflict"`
	Conflicting []ConflictingResponse `json:"conflicting"`
}

// ConflictingResponse пересекающийся резерв
type ConflictingResponse struct {
	ID              int64     `json:"id"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest() *checkConflicts.Request {
	return &checkConflicts.Request{
		StartAt:              r.StartAt,
		DurationMinutes:      r.DurationMinutes,
		ExcludeReservationID: r.ExcludeReservationID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	conflicting := make([]ConflictingResponse, len(resp.Conflicting))
	for i := range resp.Conflicting {
		res := &resp.Conflicting[i]
		conflicting[i] = ConflictingResponse{
			ID:              res.ID,
			StartAt:         res.StartAt,
			EndAt:           res.EndAt(),
			DurationMinutes: res.DurationMinutes,
			Status:          string(res.Status),
		}
	}

	return &CheckConflictsResponse{
		HasConflict: resp.HasConflict,
		Conflicting: conflicting,
	}
}
