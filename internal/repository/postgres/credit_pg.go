// internal/repository/postgres/credit_pg.go
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

// CreditRepository implements repository.CreditRepository for PostgreSQL.
type CreditRepository struct{}

// NewCreditRepository creates a new CreditRepository.
func NewCreditRepository(db *sqlx.DB) repository.CreditRepository {
	return &CreditRepository{}
}

const creditColumns = `id, bank_id, name, value, due_date, is_alive, created_at, updated_at`

// CreateCredit inserts a new credit. The unique constraint on bank_id keeps
// each bank at zero-or-one credit; a second insert surfaces as ErrDuplicateEntry.
func (r *CreditRepository) CreateCredit(ctx context.Context, q repository.DBExecutor, credit *domain.Credit) error {
	query := `INSERT INTO credits (id, bank_id, name, value, due_date, is_alive, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		credit.ID, credit.BankID, credit.Name, credit.Value, credit.DueDate,
		credit.IsAlive, credit.CreatedAt, credit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create credit '%s': %w", credit.Name, translateError(err))
	}
	return nil
}

// GetCreditByID retrieves a credit by its ID using the provided DBExecutor.
func (r *CreditRepository) GetCreditByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Credit, error) {
	var credit domain.Credit
	query := `SELECT ` + creditColumns + ` FROM credits WHERE id = $1`
	err := q.GetContext(ctx, &credit, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credit by ID %s: %w", id, translateError(err))
	}
	return &credit, nil
}

// GetCreditByBankID retrieves the credit attached to the given bank, if any.
func (r *CreditRepository) GetCreditByBankID(ctx context.Context, q repository.DBExecutor, bankID uuid.UUID) (*domain.Credit, error) {
	var credit domain.Credit
	query := `SELECT ` + creditColumns + ` FROM credits WHERE bank_id = $1`
	err := q.GetContext(ctx, &credit, query, bankID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credit for bank %s: %w", bankID, translateError(err))
	}
	return &credit, nil
}

// UpdateCredit applies a partial update via COALESCE and returns the
// post-update row for the historic snapshot.
func (r *CreditRepository) UpdateCredit(ctx context.Context, q repository.DBExecutor, id uuid.UUID, upd repository.CreditUpdate) (*domain.Credit, error) {
	var credit domain.Credit
	query := `UPDATE credits
              SET name = COALESCE($1, name),
                  value = COALESCE($2, value),
                  due_date = COALESCE($3, due_date),
                  updated_at = $4
              WHERE id = $5
              RETURNING ` + creditColumns
	err := q.GetContext(ctx, &credit, query, upd.Name, upd.Value, upd.DueDate, time.Now().UTC(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update credit %s: %w", id, translateError(err))
	}
	return &credit, nil
}

// SetCreditAlive flips the soft-delete flag.
func (r *CreditRepository) SetCreditAlive(ctx context.Context, q repository.DBExecutor, id uuid.UUID, alive bool) error {
	query := `UPDATE credits SET is_alive = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, alive, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set credit %s alive=%t: %w", id, alive, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after setting credit %s alive: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
