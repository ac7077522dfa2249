// internal/api/handler/historic.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hethus/Bank-Control-API/internal/auth"
	"github.com/hethus/Bank-Control-API/internal/service"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// HistoricHandler handles HTTP requests for the audit trail.
type HistoricHandler struct {
	service service.HistoricService
	logger  *slog.Logger
}

// NewHistoricHandler creates a new HistoricHandler.
func NewHistoricHandler(svc service.HistoricService, logger *slog.Logger) *HistoricHandler {
	return &HistoricHandler{service: svc, logger: logger}
}

// FindAll lists the audit entries for a user.
// GET /historic/{email}
func (h *HistoricHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	historics, err := h.service.FindAllByEmail(r.Context(), chi.URLParam(r, "email"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, historics)
}
