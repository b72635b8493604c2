package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidTreatmentID = "некорректный ID процедуры"
	msgMissingDate        = "дата обязательна"
	msgInvalidQuery       = "некорректные параметры запроса: ожидается date=YYYY-MM-DD и числовой durationId"
	msgTreatmentNotFound  = "процедура не найдена"
	msgTreatmentInactive  = "процедура недоступна для записи"
	msgDateInPast         = "дата в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/treatments/{treatmentId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationId (для процедур с выбором длительности)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	treatmentID, err := strconv.ParseInt(mux.Vars(r)["treatmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /treatments/{id}/available-slots - Invalid treatment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTreatmentID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /treatments/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(treatmentID, dateStr, query.Get("durationId"))
	if err != nil {
		h.logger.Warn("GET /treatments/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTreatmentNotFound):
			h.logger.Warn("GET /treatments/{id}/available-slots - Treatment not found: treatment_id=%d", treatmentID)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, getAvailableSlots.ErrTreatmentInactive):
			h.logger.Warn("GET /treatments/{id}/available-slots - Treatment inactive: treatment_id=%d", treatmentID)
			handlers.RespondConflict(w, msgTreatmentInactive)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /treatments/{id}/available-slots - Date in past: treatment_id=%d, date=%s", treatmentID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case handlers.StatusFor(err) != http.StatusInternalServerError:
			h.logger.Warn("GET /treatments/{id}/available-slots - Rejected: treatment_id=%d, error=%v", treatmentID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("GET /treatments/{id}/available-slots - Failed to get slots: treatment_id=%d, error=%v",
				treatmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /treatments/{id}/available-slots - Slots retrieved successfully: treatment_id=%d, date=%s, slots_count=%d",
		treatmentID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
