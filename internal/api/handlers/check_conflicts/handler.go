package check_conflicts

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("POST /conflicts/check - Failed to check conflicts: start_at=%s, error=%v", req.StartAt, err)
		} else {
			h.logger.Warn("POST /conflicts/check - Rejected: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /conflicts/check - Checked: start_at=%s, duration=%d, conflicts=%d",
		req.StartAt, req.DurationMinutes, len(result.Conflicting))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
