package calculate_price

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/prices/calculate
// X-User-ID необязателен, но нужен для абонемента и лимита купона на пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculatePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /prices/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var requester *int64
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		requester = &userID
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requester))
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("POST /prices/calculate - Failed to calculate price: treatment_id=%d, error=%v", req.TreatmentID, err)
		} else {
			h.logger.Warn("POST /prices/calculate - Rejected: treatment_id=%d, error=%v", req.TreatmentID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /prices/calculate - Price calculated: treatment_id=%d, final=%s",
		req.TreatmentID, result.Breakdown.FinalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
