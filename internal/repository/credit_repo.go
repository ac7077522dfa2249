// internal/repository/credit_repo.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/domain"
)

// CreditUpdate carries the optional fields of a partial credit update.
// Nil fields are left untouched.
type CreditUpdate struct {
	Name    *string
	Value   *decimal.Decimal
	DueDate *time.Time
}

// CreditRepository defines the interface for credit data operations.
type CreditRepository interface {
	// CreateCredit adds a new credit linked to its parent bank.
	CreateCredit(ctx context.Context, q DBExecutor, credit *domain.Credit) error
	// GetCreditByID retrieves a credit by its ID.
	GetCreditByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Credit, error)
	// GetCreditByBankID retrieves the credit attached to the given bank, if any.
	GetCreditByBankID(ctx context.Context, q DBExecutor, bankID uuid.UUID) (*domain.Credit, error)
	// UpdateCredit applies a partial update and returns the post-update credit.
	UpdateCredit(ctx context.Context, q DBExecutor, id uuid.UUID, upd CreditUpdate) (*domain.Credit, error)
	// SetCreditAlive flips the soft-delete flag.
	SetCreditAlive(ctx context.Context, q DBExecutor, id uuid.UUID, alive bool) error
}
