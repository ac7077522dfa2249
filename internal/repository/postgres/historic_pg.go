// internal/repository/postgres/historic_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
)

// HistoricRepository implements repository.HistoricRepository for PostgreSQL.
type HistoricRepository struct{}

// NewHistoricRepository creates a new HistoricRepository.
func NewHistoricRepository(db *sqlx.DB) repository.HistoricRepository {
	return &HistoricRepository{}
}

// CreateHistoric appends one audit entry using the provided DBExecutor.
func (r *HistoricRepository) CreateHistoric(ctx context.Context, q repository.DBExecutor, historic *domain.Historic) error {
	query := `INSERT INTO historics (id, user_email, operation, model, where_label, snapshot, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		historic.ID, historic.UserEmail, historic.Operation, historic.Model,
		historic.Where, historic.Snapshot, historic.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create historic entry: %w", translateError(err))
	}
	return nil
}

// GetHistoricsByUserEmail lists all audit entries for a user, newest first.
func (r *HistoricRepository) GetHistoricsByUserEmail(ctx context.Context, q repository.DBExecutor, email string) ([]domain.Historic, error) {
	historics := []domain.Historic{}
	query := `SELECT id, user_email, operation, model, where_label, snapshot, created_at
              FROM historics
              WHERE user_email = $1
              ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &historics, query, email); err != nil {
		return nil, fmt.Errorf("failed to fetch historics for '%s': %w", email, translateError(err))
	}
	return historics, nil
}

// DeleteHistoricsByUserEmail removes every audit entry belonging to a user.
// This is the only delete path for historics and exists solely for user removal.
func (r *HistoricRepository) DeleteHistoricsByUserEmail(ctx context.Context, q repository.DBExecutor, email string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM historics WHERE user_email = $1`, email); err != nil {
		return fmt.Errorf("failed to delete historics for '%s': %w", email, translateError(err))
	}
	return nil
}
