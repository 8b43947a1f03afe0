package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/usecase"
	"go.uber.org/zap"
)

type AdminHandler struct {
	ReportUC *usecase.AdminReportUseCase
	Logger   *zap.Logger
}

func NewAdminHandler(uc *usecase.AdminReportUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{ReportUC: uc, Logger: logger}
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SalesPeople handles GET /admin/users.
func (h *AdminHandler) SalesPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.ReportUC.SalesPeople(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, people)
}

func (h *AdminHandler) LeadsOf(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ReportUC.LeadsOf(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// InboundReplies handles GET /incoming-emails?limit=n.
func (h *AdminHandler) InboundReplies(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	replies, err := h.ReportUC.InboundReplies(r.Context(), limit)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, replies)
}

// Users handles GET /users: the salespeople directory without counts.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	people, err := h.ReportUC.SalesPeople(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	users := make([]UserSummary, 0, len(people))
	for _, p := range people {
		users = append(users, UserSummary{ID: p.ID, Name: p.Name, Email: p.Email})
	}
	writeJSON(w, http.StatusOK, users)
}
