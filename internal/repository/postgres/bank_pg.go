// internal/repository/postgres/bank_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// BankRepository implements repository.BankRepository for PostgreSQL.
type BankRepository struct{}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(db *sqlx.DB) repository.BankRepository {
	return &BankRepository{}
}

const bankColumns = `id, user_email, name, value, is_alive, created_at, updated_at`

// CreateBank inserts a new bank using the provided DBExecutor.
func (r *BankRepository) CreateBank(ctx context.Context, q repository.DBExecutor, bank *domain.Bank) error {
	query := `INSERT INTO banks (id, user_email, name, value, is_alive, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		bank.ID, bank.UserEmail, bank.Name, bank.Value, bank.IsAlive, bank.CreatedAt, bank.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bank '%s': %w", bank.Name, translateError(err))
	}
	return nil
}

// GetBankByID retrieves a bank by its ID using the provided DBExecutor.
func (r *BankRepository) GetBankByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Bank, error) {
	var bank domain.Bank
	query := `SELECT ` + bankColumns + ` FROM banks WHERE id = $1`
	err := q.GetContext(ctx, &bank, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bank by ID %s: %w", id, translateError(err))
	}
	return &bank, nil
}

// GetBanksByUserEmail retrieves all banks owned by the given user.
func (r *BankRepository) GetBanksByUserEmail(ctx context.Context, q repository.DBExecutor, email string, liveOnly bool) ([]domain.Bank, error) {
	banks := []domain.Bank{}
	query := `SELECT ` + bankColumns + ` FROM banks WHERE user_email = $1`
	if liveOnly {
		query += ` AND is_alive = TRUE`
	}
	query += ` ORDER BY created_at`
	if err := q.SelectContext(ctx, &banks, query, email); err != nil {
		return nil, fmt.Errorf("failed to fetch banks for '%s': %w", email, translateError(err))
	}
	return banks, nil
}

// UpdateBankName renames a bank. No other column is touched: the balance is
// write-once and the soft-delete flag has its own path.
func (r *BankRepository) UpdateBankName(ctx context.Context, q repository.DBExecutor, id uuid.UUID, name string) error {
	query := `UPDATE banks SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, name, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update bank %s: %w", id, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating bank %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SetBankAlive flips the soft-delete flag.
func (r *BankRepository) SetBankAlive(ctx context.Context, q repository.DBExecutor, id uuid.UUID, alive bool) error {
	query := `UPDATE banks SET is_alive = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, alive, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set bank %s alive=%t: %w", id, alive, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after setting bank %s alive: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
