package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/ptr"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type mockUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	req  *getAvailableSlots.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	m.req = req
	return m.resp, m.err
}

func serve(uc *mockUseCase, treatmentID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments/"+treatmentID+"/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"treatmentId": treatmentID})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	origin := domain.OriginSpecialDate
	uc := &mockUseCase{resp: &getAvailableSlots.Response{
		Date:            types.MustDate("2025-03-10"),
		TreatmentID:     1,
		DurationMinutes: 90,
		Slots: []domain.TimeSlot{
			{Time: types.MustTimeString("09:00"), Available: true},
			{Time: types.MustTimeString("09:30"), Available: true},
		},
		Note:       ptr.Ptr("short day"),
		RuleOrigin: &origin,
	}}

	rec := serve(uc, "1", "?date=2025-03-10&durationId=21")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, 90, body.DurationMinutes)
	assert.Equal(t, []AvailableSlot{{Time: "09:00", Available: true}, {Time: "09:30", Available: true}}, body.Slots)
	assert.Equal(t, "short day", *body.Note)
	assert.Equal(t, "special_date", *body.RuleOrigin)

	assert.Equal(t, int64(21), *uc.req.DurationID)
	assert.Equal(t, "2025-03-10", uc.req.Date.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name        string
		treatmentID string
		query       string
		ucErr       error
		wantStatus  int
	}{
		{name: "invalid treatment id", treatmentID: "abc", query: "?date=2025-03-10", wantStatus: http.StatusBadRequest},
		{name: "missing date", treatmentID: "1", query: "", wantStatus: http.StatusBadRequest},
		{name: "bad date", treatmentID: "1", query: "?date=10.03.2025", wantStatus: http.StatusBadRequest},
		{name: "bad duration id", treatmentID: "1", query: "?date=2025-03-10&durationId=x", wantStatus: http.StatusBadRequest},
		{name: "treatment not found", treatmentID: "1", query: "?date=2025-03-10", ucErr: getAvailableSlots.ErrTreatmentNotFound, wantStatus: http.StatusNotFound},
		{name: "treatment inactive", treatmentID: "1", query: "?date=2025-03-10", ucErr: getAvailableSlots.ErrTreatmentInactive, wantStatus: http.StatusConflict},
		{name: "date in past", treatmentID: "1", query: "?date=2025-03-10", ucErr: getAvailableSlots.ErrDateInPast, wantStatus: http.StatusBadRequest},
		{name: "duration required", treatmentID: "1", query: "?date=2025-03-10", ucErr: domain.ErrDurationRequired, wantStatus: http.StatusBadRequest},
		{name: "internal", treatmentID: "1", query: "?date=2025-03-10", ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&mockUseCase{err: tt.ucErr}, tt.treatmentID, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
