package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Errors  []usecase.ValidationError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func statusFor(code string) int {
	switch code {
	case usecase.CodeValidation, usecase.CodeEmailTaken, usecase.CodeInvalidCredentials:
		return http.StatusBadRequest
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeLeadNotFound, usecase.CodeAccountNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeUseCaseError maps use case failures onto HTTP. Technical causes are
// logged and never echoed to the client.
func writeUseCaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Code), ErrorResponse{Error: de.Code, Message: de.Message, Errors: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error(te.Message, zap.String("code", te.Code), zap.Error(te.Err))
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
