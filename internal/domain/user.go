// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an account holder. UserValue and UserCredit are denormalized
// running totals over the user's live banks and credits; they are maintained by
// the service layer only and never set from caller-supplied input.
type User struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Email      string          `db:"email" json:"email"` // unique, immutable after creation
	Password   string          `db:"password" json:"-"`  // bcrypt hash, never serialized
	UserValue  decimal.Decimal `db:"user_value" json:"userValue"`
	UserCredit decimal.Decimal `db:"user_credit" json:"userCredit"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`

	// Banks is populated on aggregate reads only, not by every query.
	Banks []Bank `db:"-" json:"banks,omitempty"`
}

// NewUser creates a new User with zeroed aggregates.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		Password:   passwordHash,
		UserValue:  decimal.Zero,
		UserCredit: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
