// internal/repository/bank_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hethus/Bank-Control-API/internal/domain"
)

// BankRepository defines the interface for bank data operations.
type BankRepository interface {
	// CreateBank adds a new bank to the database using the provided DBExecutor.
	CreateBank(ctx context.Context, q DBExecutor, bank *domain.Bank) error
	// GetBankByID retrieves a bank by its ID, without nested relations.
	GetBankByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Bank, error)
	// GetBanksByUserEmail retrieves all banks owned by the given user.
	// When liveOnly is true, soft-deleted banks are excluded.
	GetBanksByUserEmail(ctx context.Context, q DBExecutor, email string, liveOnly bool) ([]domain.Bank, error)
	// UpdateBankName renames a bank. The balance column is deliberately absent
	// from the UPDATE: the value is write-once at creation.
	UpdateBankName(ctx context.Context, q DBExecutor, id uuid.UUID, name string) error
	// SetBankAlive flips the soft-delete flag.
	SetBankAlive(ctx context.Context, q DBExecutor, id uuid.UUID, alive bool) error
}
