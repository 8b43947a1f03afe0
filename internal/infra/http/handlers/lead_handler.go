package handlers

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

//go:embed pages/interest_confirmed.html
var interestConfirmedPage []byte

type LeadHandler struct {
	SubmitUC    *usecase.SubmitLeadUseCase
	QueryUC     *usecase.LeadQueryUseCase
	InterestUC  *usecase.InterestUseCase
	RedirectURL string
	Logger      *zap.Logger
}

func NewLeadHandler(
	submit *usecase.SubmitLeadUseCase,
	query *usecase.LeadQueryUseCase,
	interest *usecase.InterestUseCase,
	redirectURL string,
	logger *zap.Logger,
) *LeadHandler {
	return &LeadHandler{
		SubmitUC:    submit,
		QueryUC:     query,
		InterestUC:  interest,
		RedirectURL: redirectURL,
		Logger:      logger,
	}
}

type SetInterestRequest struct {
	Interested *bool `json:"interested"`
}

type AcceptEmailRequest struct {
	CustomerID string `json:"customerId"`
}

// Submit handles POST /collect-customer-info.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input usecase.SubmitLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	input.UserID = caller.AccountID

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	leads, err := h.QueryUC.ListMine(r.Context(), caller)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	lead, err := h.QueryUC.Get(r.Context(), caller, chi.URLParam(r, "customerId"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.QueryUC.Delete(r.Context(), caller, chi.URLParam(r, "customerId")); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetInterest handles PATCH /customers/{customerId}/interest.
func (h *LeadHandler) SetInterest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req SetInterestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if req.Interested == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   usecase.CodeValidation,
			Message: "interested must be true or false",
			Errors:  []usecase.ValidationError{{Field: "interested", Message: "interested must be true or false"}},
		})
		return
	}

	lead, err := h.InterestUC.Set(r.Context(), caller, chi.URLParam(r, "customerId"), *req.Interested)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// ConfirmLink handles the link mailed to the prospect.
func (h *LeadHandler) ConfirmLink(w http.ResponseWriter, r *http.Request) {
	if _, err := h.InterestUC.Confirm(r.Context(), chi.URLParam(r, "customerId"), usecase.SourceLink); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	http.Redirect(w, r, h.RedirectURL, http.StatusFound)
}

func (h *LeadHandler) AcceptEmail(w http.ResponseWriter, r *http.Request) {
	var req AcceptEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   usecase.CodeValidation,
			Message: "customerId is required",
			Errors:  []usecase.ValidationError{{Field: "customerId", Message: "customerId is required"}},
		})
		return
	}

	if _, err := h.InterestUC.Confirm(r.Context(), req.CustomerID, usecase.SourceAccept); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Interest confirmed"})
}

func (h *LeadHandler) InterestConfirmed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(interestConfirmedPage)
}

func (h *LeadHandler) identity(w http.ResponseWriter, r *http.Request) (entity.Identity, bool) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "Access denied. No token provided.")
	}
	return caller, ok
}
