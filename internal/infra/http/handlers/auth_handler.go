package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	RegisterUC *usecase.RegisterAccountUseCase
	LoginUC    *usecase.AuthenticateUseCase
	Logger     *zap.Logger
}

func NewAuthHandler(register *usecase.RegisterAccountUseCase, login *usecase.AuthenticateUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		RegisterUC: register,
		LoginUC:    login,
		Logger:     logger,
	}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterAccountInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// Login handles POST /login. Every caller-side failure is a 400.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		if de, ok := usecase.AsDomainError(err); ok {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: de.Code, Message: de.Message, Errors: de.Fields})
			return
		}
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
