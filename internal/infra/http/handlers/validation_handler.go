package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

// ValidationHandler lets the signup form check an address before submitting.
type ValidationHandler struct {
	RegisterUC *usecase.RegisterAccountUseCase
	Logger     *zap.Logger
}

func NewValidationHandler(uc *usecase.RegisterAccountUseCase, logger *zap.Logger) *ValidationHandler {
	return &ValidationHandler{RegisterUC: uc, Logger: logger}
}

type EmailAvailabilityResponse struct {
	Available bool `json:"available"`
}

func (h *ValidationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	available, err := h.RegisterUC.EmailAvailable(r.Context(), input.Email)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, EmailAvailabilityResponse{Available: available})
}
