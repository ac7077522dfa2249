// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
// Methods receive a DBExecutor directly, so the struct holds no connection.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

const userColumns = `id, name, email, password, user_value, user_credit, created_at, updated_at`

// CreateUser inserts a new user using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (id, name, email, password, user_value, user_credit, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password,
		user.UserValue, user.UserCredit, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user '%s': %w", user.Email, translateError(err))
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, translateError(err))
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their unique email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, translateError(err))
	}
	return &user, nil
}

// UpdateUser applies name/password changes to an existing user.
// Email and the aggregate columns are deliberately absent from the UPDATE.
func (r *UserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `UPDATE users SET name = $1, password = $2, updated_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, user.Name, user.Password, time.Now().UTC(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %s: %w", user.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteUser hard-deletes a user record.
func (r *UserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting user %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// AdjustAggregates applies relative deltas to the denormalized totals.
// The update is expressed as a delta at the SQL level so concurrent
// adjustments do not overwrite each other.
func (r *UserRepository) AdjustAggregates(ctx context.Context, q repository.DBExecutor, email string, valueDelta, creditDelta decimal.Decimal) error {
	query := `UPDATE users
              SET user_value = user_value + $1, user_credit = user_credit + $2, updated_at = $3
              WHERE email = $4`
	result, err := q.ExecContext(ctx, query, valueDelta, creditDelta, time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("failed to adjust aggregates for '%s': %w", email, translateError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adjusting aggregates for '%s': %w", email, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
