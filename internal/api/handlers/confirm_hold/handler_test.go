package confirm_hold

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

	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	confirmHold "github.com/m04kA/SMC-BookingEngine/internal/usecase/confirm_hold"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type mockUseCase struct {
	resp *confirmHold.Response
	err  error
	req  *confirmHold.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *confirmHold.Request) (*confirmHold.Response, error) {
	m.req = req
	return m.resp, m.err
}

func serve(uc *mockUseCase, holdID, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds/"+holdID+"/confirm", nil)
	req = mux.SetURLVars(req, map[string]string{"holdId": holdID})
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Identify(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &mockUseCase{resp: &confirmHold.Response{
		ReservationID:   100,
		TreatmentID:     1,
		DurationMinutes: 60,
		Status:          domain.ReservationConfirmed,
	}}

	rec := serve(uc, "hold-1", "7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, &confirmHold.Request{UserID: 7, HoldID: "hold-1"}, uc.req)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		ucErr      error
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "invalid input", userID: "7", ucErr: confirmHold.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "hold not found", userID: "7", ucErr: confirmHold.ErrHoldNotFound, wantStatus: http.StatusNotFound},
		{name: "reservation gone", userID: "7", ucErr: confirmHold.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "not pending", userID: "7", ucErr: confirmHold.ErrReservationNotPending, wantStatus: http.StatusConflict},
		{name: "internal", userID: "7", ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&mockUseCase{err: tt.ucErr}, "hold-1", tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
