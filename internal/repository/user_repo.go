// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.User, error)
	// GetUserByEmail retrieves a user by their unique email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// UpdateUser applies name/password changes to an existing user.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// DeleteUser hard-deletes a user record.
	DeleteUser(ctx context.Context, q DBExecutor, id uuid.UUID) error
	// AdjustAggregates applies relative deltas to the user's denormalized
	// userValue/userCredit totals. Deltas may be negative; a zero delta is a no-op
	// at the SQL level but still issues the update.
	AdjustAggregates(ctx context.Context, q DBExecutor, email string, valueDelta, creditDelta decimal.Decimal) error
}
