package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/slots"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/workinghours"
	treatmentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/treatment"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type mockTreatments struct {
	treatment *domain.Treatment
	err       error
}

func (m *mockTreatments) GetByID(_ context.Context, _ int64) (*domain.Treatment, error) {
	return m.treatment, m.err
}

type mockReservations struct {
	reservations []domain.Reservation
	err          error
	filter       domain.ReservationWindowFilter
}

func (m *mockReservations) GetByWindow(_ context.Context, filter domain.ReservationWindowFilter) ([]domain.Reservation, error) {
	m.filter = filter
	return m.reservations, m.err
}

type mockSource struct {
	cfg *domain.WorkingHoursConfig
}

func (m *mockSource) Get(context.Context) (*domain.WorkingHoursConfig, error) {
	return m.cfg, nil
}

type mockMetrics struct {
	outcomes []string
}

func (m *mockMetrics) RecordSlots(outcome string, _ int) {
	m.outcomes = append(m.outcomes, outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	clock  = servicetime.MustNew(servicetime.DefaultZone)
	monday = types.MustDate("2025-03-10")
)

func mondayMornings() *domain.WorkingHoursConfig {
	return &domain.WorkingHoursConfig{Rules: []domain.RuleEntry{
		domain.FixedRule{Weekday: 1, Rule: domain.DayRule{
			IsActive:       true,
			WorkingPeriods: []domain.TimeRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("13:00")}},
		}},
	}}
}

func massage() *domain.Treatment {
	return &domain.Treatment{
		ID:                     1,
		PricingType:            domain.PricingFixed,
		FixedPrice:             ptr.Ptr(decimal.NewFromInt(200)),
		DefaultDurationMinutes: ptr.Ptr(60),
		IsActive:               true,
	}
}

func newUseCase(treatments *mockTreatments, reservations *mockReservations, metrics *mockMetrics) *UseCase {
	uc := NewUseCase(
		treatments,
		reservations,
		&mockSource{cfg: mondayMornings()},
		workinghours.NewResolver(clock),
		slots.NewGenerator(clock),
		clock,
		metrics,
		logger.Nop(),
	)
	uc.timeProvider = fixedTime{now: clock.At(monday.AddDays(-2), types.MustTimeString("10:00"))}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	reservations := &mockReservations{reservations: []domain.Reservation{{
		ID:              5,
		StartAt:         clock.At(monday, types.MustTimeString("10:00")),
		DurationMinutes: 60,
		Status:          domain.ReservationConfirmed,
	}}}
	metrics := &mockMetrics{}
	uc := newUseCase(&mockTreatments{treatment: massage()}, reservations, metrics)

	resp, err := uc.Execute(context.Background(), &Request{TreatmentID: 1, Date: monday})
	require.NoError(t, err)

	var times []string
	for _, s := range resp.Slots {
		times = append(times, s.Time.String())
		assert.True(t, s.Available)
	}
	assert.Equal(t, []string{"09:00", "11:00", "11:30", "12:00"}, times)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Nil(t, resp.Note)
	assert.Equal(t, domain.OriginFixedRule, *resp.RuleOrigin)
	assert.Equal(t, []string{outcomeAvailable}, metrics.outcomes)

	from, to := clock.DayBounds(monday)
	assert.True(t, reservations.filter.From.Equal(from))
	assert.True(t, reservations.filter.To.Equal(to))
	assert.False(t, reservations.filter.IncludeInactive)
}

func TestUseCase_ClosedDay(t *testing.T) {
	metrics := &mockMetrics{}
	uc := newUseCase(&mockTreatments{treatment: massage()}, &mockReservations{}, metrics)

	resp, err := uc.Execute(context.Background(), &Request{TreatmentID: 1, Date: monday.AddDays(1)})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	require.NotNil(t, resp.Note)
	assert.Equal(t, domain.NoteClosed, *resp.Note)
	assert.Nil(t, resp.RuleOrigin)
	assert.Equal(t, []string{outcomeEmpty}, metrics.outcomes)
}

func TestUseCase_Errors(t *testing.T) {
	inactive := massage()
	inactive.IsActive = false

	noDuration := massage()
	noDuration.DefaultDurationMinutes = nil

	byDuration := &domain.Treatment{ID: 2, PricingType: domain.PricingDurationBased, IsActive: true}

	tests := []struct {
		name         string
		req          *Request
		treatments   *mockTreatments
		reservations *mockReservations
		wantErr      error
	}{
		{
			name:       "invalid treatment id",
			req:        &Request{Date: monday},
			treatments: &mockTreatments{},
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "date in the past",
			req:        &Request{TreatmentID: 1, Date: monday.AddDays(-3)},
			treatments: &mockTreatments{treatment: massage()},
			wantErr:    ErrDateInPast,
		},
		{
			name:       "treatment not found",
			req:        &Request{TreatmentID: 1, Date: monday},
			treatments: &mockTreatments{err: treatmentRepo.ErrTreatmentNotFound},
			wantErr:    domain.ErrNotFound,
		},
		{
			name:       "treatment inactive",
			req:        &Request{TreatmentID: 1, Date: monday},
			treatments: &mockTreatments{treatment: inactive},
			wantErr:    domain.ErrStateConflict,
		},
		{
			name:       "duration required",
			req:        &Request{TreatmentID: 2, Date: monday},
			treatments: &mockTreatments{treatment: byDuration},
			wantErr:    domain.ErrDurationRequired,
		},
		{
			name:       "fixed treatment without duration",
			req:        &Request{TreatmentID: 1, Date: monday},
			treatments: &mockTreatments{treatment: noDuration},
			wantErr:    ErrDurationUnknown,
		},
		{
			name:         "repository failure",
			req:          &Request{TreatmentID: 1, Date: monday},
			treatments:   &mockTreatments{treatment: massage()},
			reservations: &mockReservations{err: errors.New("connection reset")},
			wantErr:      ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservations := tt.reservations
			if reservations == nil {
				reservations = &mockReservations{}
			}
			uc := newUseCase(tt.treatments, reservations, &mockMetrics{})

			resp, err := uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
