package confirm_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	confirmHold "github.com/m04kA/SMC-BookingEngine/internal/usecase/confirm_hold"
)

const (
	msgUnauthorized    = "требуется заголовок X-User-ID"
	msgInvalidHoldID   = "некорректный ID удержания"
	msgHoldNotFound    = "удержание не найдено или истекло"
	msgNotPending      = "резерв уже не ожидает подтверждения"
	msgReservationGone = "резерв не найден"
)

type Handler struct {
	useCase ConfirmHoldUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds/{holdId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	holdID := mux.Vars(r)["holdId"]

	result, err := h.useCase.Execute(r.Context(), &confirmHold.Request{UserID: userID, HoldID: holdID})
	if err != nil {
		switch {
		case errors.Is(err, confirmHold.ErrInvalidInput):
			h.logger.Warn("POST /holds/{id}/confirm - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHoldID)

		case errors.Is(err, confirmHold.ErrHoldNotFound):
			h.logger.Warn("POST /holds/{id}/confirm - Hold not found: hold_id=%s, user_id=%d", holdID, userID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		case errors.Is(err, confirmHold.ErrReservationNotFound):
			h.logger.Warn("POST /holds/{id}/confirm - Reservation not found: hold_id=%s", holdID)
			handlers.RespondNotFound(w, msgReservationGone)

		case errors.Is(err, confirmHold.ErrReservationNotPending):
			h.logger.Warn("POST /holds/{id}/confirm - Reservation not pending: hold_id=%s", holdID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /holds/{id}/confirm - Failed to confirm hold: hold_id=%s, user_id=%d, error=%v",
				holdID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds/{id}/confirm - Hold confirmed: hold_id=%s, reservation_id=%d, user_id=%d",
		holdID, result.ReservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
