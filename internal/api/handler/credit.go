// internal/api/handler/credit.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/auth"
	"github.com/hethus/Bank-Control-API/internal/service"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// CreditHandler handles HTTP requests for the credit lifecycle. All routes are
// nested under the parent bank.
type CreditHandler struct {
	service service.CreditService
	logger  *slog.Logger
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(svc service.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{service: svc, logger: logger}
}

// CreateCreditRequest represents the request body for attaching a credit.
type CreateCreditRequest struct {
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
	DueDate string          `json:"dueDate"`
}

// Create handles the credit creation request.
// POST /banks/{bankID}/credit
func (h *CreditHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("invalid request body: %w", util.ErrInvalidInput))
		return
	}

	credit, err := h.service.Create(r.Context(), chi.URLParam(r, "bankID"), service.CreateCreditInput{
		Name:    req.Name,
		Value:   req.Value,
		DueDate: req.DueDate,
	}, caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, credit)
}

// UpdateCreditRequest represents the request body for a partial credit update.
type UpdateCreditRequest struct {
	Name    *string          `json:"name"`
	Value   *decimal.Decimal `json:"value"`
	DueDate *string          `json:"dueDate"`
}

// Update handles the credit update request.
// PATCH /banks/{bankID}/credit/{creditID}
func (h *CreditHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req UpdateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("invalid request body: %w", util.ErrInvalidInput))
		return
	}

	credit, err := h.service.Update(r.Context(), chi.URLParam(r, "bankID"), chi.URLParam(r, "creditID"), service.UpdateCreditInput{
		Name:    req.Name,
		Value:   req.Value,
		DueDate: req.DueDate,
	}, caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, credit)
}

// SoftDelete handles the credit removal request.
// DELETE /banks/{bankID}/credit/{creditID}
func (h *CreditHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	credit, err := h.service.SoftDelete(r.Context(), chi.URLParam(r, "bankID"), chi.URLParam(r, "creditID"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, credit)
}

// Reactivate handles the credit reactivation request.
// PATCH /banks/{bankID}/credit/{creditID}/alive
func (h *CreditHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	credit, err := h.service.Reactivate(r.Context(), chi.URLParam(r, "bankID"), chi.URLParam(r, "creditID"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, credit)
}
