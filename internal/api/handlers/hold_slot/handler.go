package hold_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	holdSlot "github.com/m04kA/SMC-BookingEngine/internal/usecase/hold_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgUnauthorized       = "требуется заголовок X-User-ID"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgTreatmentNotFound  = "процедура не найдена"
	msgTreatmentInactive  = "процедура недоступна для записи"
	msgDateInPast         = "дата в прошлом"
)

type Handler struct {
	useCase HoldSlotUseCase
	logger  Logger
}

func NewHandler(useCase HoldSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req HoldSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, holdSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /holds - Slot not available: user_id=%d, treatment_id=%d, date=%s, time=%s",
				userID, req.TreatmentID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, holdSlot.ErrTreatmentNotFound):
			h.logger.Warn("POST /holds - Treatment not found: treatment_id=%d", req.TreatmentID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, holdSlot.ErrTreatmentInactive):
			h.logger.Warn("POST /holds - Treatment inactive: treatment_id=%d", req.TreatmentID)
			handlers.RespondConflict(w, msgTreatmentInactive)

		case errors.Is(err, holdSlot.ErrDateInPast):
			h.logger.Warn("POST /holds - Date in past: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case handlers.StatusFor(err) != http.StatusInternalServerError:
			h.logger.Warn("POST /holds - Rejected: user_id=%d, error=%v", userID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /holds - Failed to hold slot: user_id=%d, treatment_id=%d, error=%v",
				userID, req.TreatmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Slot held: hold_id=%s, reservation_id=%d, user_id=%d",
		result.HoldID, result.ReservationID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
