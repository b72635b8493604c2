package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
)

var base = time.Date(2024, time.July, 1, 6, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd int
		bStart, bEnd int
		want         bool
	}{
		{name: "touching end to start", aStart: 0, aEnd: 60, bStart: 60, bEnd: 120, want: false},
		{name: "touching start to end", aStart: 60, aEnd: 120, bStart: 0, bEnd: 60, want: false},
		{name: "same start", aStart: 0, aEnd: 30, bStart: 0, bEnd: 60, want: true},
		{name: "partial", aStart: 30, aEnd: 90, bStart: 60, bEnd: 120, want: true},
		{name: "contained", aStart: 70, aEnd: 80, bStart: 60, bEnd: 120, want: true},
		{name: "disjoint", aStart: 0, aEnd: 10, bStart: 20, bEnd: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(tt.aStart), at(tt.aEnd), at(tt.bStart), at(tt.bEnd))
			assert.Equal(t, tt.want, got)

			// symmetry
			assert.Equal(t, got, Overlaps(at(tt.bStart), at(tt.bEnd), at(tt.aStart), at(tt.aEnd)))
		})
	}
}

func TestDetector_Check(t *testing.T) {
	reservations := []domain.Reservation{
		{ID: 3, StartAt: at(120), DurationMinutes: 60, Status: domain.ReservationConfirmed},
		{ID: 1, StartAt: at(60), DurationMinutes: 60, Status: domain.ReservationPending},
		{ID: 2, StartAt: at(60), DurationMinutes: 60, Status: domain.ReservationCancelled},
		{ID: 4, StartAt: at(0), DurationMinutes: 30, Status: domain.ReservationRefunded},
	}
	d := NewDetector()

	t.Run("reports active overlaps ordered by start", func(t *testing.T) {
		res, err := d.Check(at(90), 60, reservations, nil)
		require.NoError(t, err)
		assert.True(t, res.HasConflict)
		require.Len(t, res.Conflicting, 2)
		assert.Equal(t, int64(1), res.Conflicting[0].ID)
		assert.Equal(t, int64(3), res.Conflicting[1].ID)
	})

	t.Run("terminal statuses never conflict", func(t *testing.T) {
		res, err := d.Check(at(0), 30, reservations, nil)
		require.NoError(t, err)
		assert.False(t, res.HasConflict)
		assert.Empty(t, res.Conflicting)
	})

	t.Run("excluded reservation is ignored", func(t *testing.T) {
		res, err := d.Check(at(60), 60, reservations, ptr.Ptr(int64(1)))
		require.NoError(t, err)
		assert.False(t, res.HasConflict)
	})

	t.Run("ending at reservation start is free", func(t *testing.T) {
		res, err := d.Check(at(30), 30, reservations, nil)
		require.NoError(t, err)
		assert.False(t, res.HasConflict)
	})

	t.Run("non positive duration", func(t *testing.T) {
		_, err := d.Check(at(0), 0, reservations, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
