package check_conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/conflict"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
)

type mockReservations struct {
	reservations []domain.Reservation
	err          error
}

func (m *mockReservations) GetByWindow(context.Context, domain.ReservationWindowFilter) ([]domain.Reservation, error) {
	return m.reservations, m.err
}

var nine = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func reservation(id int64, start time.Time, minutes int, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{ID: id, StartAt: start, DurationMinutes: minutes, Status: status}
}

func TestUseCase_Execute(t *testing.T) {
	existing := []domain.Reservation{
		reservation(2, nine.Add(90*time.Minute), 30, domain.ReservationPending),
		reservation(1, nine.Add(30*time.Minute), 60, domain.ReservationConfirmed),
		reservation(3, nine.Add(time.Hour), 30, domain.ReservationCancelled),
	}

	tests := []struct {
		name     string
		req      *Request
		conflict bool
		ids      []int64
	}{
		{
			name:     "overlapping reservations sorted by start",
			req:      &Request{StartAt: nine, DurationMinutes: 120},
			conflict: true,
			ids:      []int64{1, 2},
		},
		{
			name: "touching boundaries do not conflict",
			req:  &Request{StartAt: nine, DurationMinutes: 30},
		},
		{
			name:     "excluded reservation is ignored",
			req:      &Request{StartAt: nine.Add(30 * time.Minute), DurationMinutes: 60, ExcludeReservationID: ptr.Ptr(int64(1))},
			conflict: false,
		},
	}

	uc := NewUseCase(&mockReservations{reservations: existing}, conflict.NewDetector(), logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.conflict, resp.HasConflict)

			var ids []int64
			for _, r := range resp.Conflicting {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestUseCase_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		repoErr error
		wantErr error
	}{
		{name: "zero duration", req: &Request{StartAt: nine}, wantErr: domain.ErrInvalidInput},
		{name: "missing start", req: &Request{DurationMinutes: 30}, wantErr: domain.ErrInvalidInput},
		{name: "repository failure", req: &Request{StartAt: nine, DurationMinutes: 30}, repoErr: errors.New("boom"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&mockReservations{err: tt.repoErr}, conflict.NewDetector(), logger.Nop())
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
