// internal/api/handler/bank.go
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

// BankHandler handles HTTP requests for the bank lifecycle.
type BankHandler struct {
	service service.BankService
	logger  *slog.Logger
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(svc service.BankService, logger *slog.Logger) *BankHandler {
	return &BankHandler{service: svc, logger: logger}
}

// CreateBankRequest represents the request body for opening a bank account.
// Value is the opening balance and defaults to zero.
type CreateBankRequest struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Create handles the bank registration request.
// POST /banks/{email}
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("invalid request body: %w", util.ErrInvalidInput))
		return
	}

	bank, err := h.service.Create(r.Context(), chi.URLParam(r, "email"), service.CreateBankInput{
		Name:  req.Name,
		Value: req.Value,
	}, caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, bank)
}

// FindOne handles the bank lookup request.
// GET /banks/{id}
func (h *BankHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	bank, err := h.service.FindOne(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, bank)
}

// FindAll handles the listing of a user's banks.
// GET /banks/all/{email}
func (h *BankHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	banks, err := h.service.FindAll(r.Context(), chi.URLParam(r, "email"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, banks)
}

// UpdateBankRequest represents the request body for a partial bank update.
// A non-nil Value is always rejected: the balance is write-once.
type UpdateBankRequest struct {
	Name  *string          `json:"name"`
	Value *decimal.Decimal `json:"value"`
}

// Update handles the bank update request.
// PATCH /banks/{id}
func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req UpdateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, fmt.Errorf("invalid request body: %w", util.ErrInvalidInput))
		return
	}

	bank, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateBankInput{
		Name:  req.Name,
		Value: req.Value,
	}, caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, bank)
}

// SoftDelete handles the bank soft-delete request.
// DELETE /banks/{id}
func (h *BankHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	bank, err := h.service.SoftDelete(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, bank)
}

// Reactivate handles the bank reactivation request.
// PATCH /banks/{bankID}/alive
func (h *BankHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	bank, err := h.service.Reactivate(r.Context(), chi.URLParam(r, "bankID"), caller)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, bank)
}
