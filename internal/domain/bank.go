// internal/domain/bank.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bank represents a named account owned by exactly one user. Value is the
// opening balance and is write-once: no update path may change it after
// creation. IsAlive is the soft-delete flag; a dead bank stays addressable by
// id so it can be reactivated.
type Bank struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserEmail string          `db:"user_email" json:"userEmail"`
	Name      string          `db:"name" json:"name"`
	Value     decimal.Decimal `db:"value" json:"value"`
	IsAlive   bool            `db:"is_alive" json:"isAlive"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`

	// Credit is the zero-or-one credit line attached to this bank,
	// populated on aggregate reads.
	Credit *Credit `db:"-" json:"credit,omitempty"`
}

// NewBank creates a new live Bank owned by the given user email.
func NewBank(userEmail, name string, value decimal.Decimal) *Bank {
	now := time.Now().UTC()
	return &Bank{
		ID:        uuid.New(),
		UserEmail: userEmail,
		Name:      name,
		Value:     value,
		IsAlive:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns the bank's field values with its primary key and owner key
// stripped, for embedding in a historic entry.
func (b *Bank) Snapshot() Snapshot {
	return Snapshot{
		"name":      b.Name,
		"value":     b.Value,
		"isAlive":   b.IsAlive,
		"createdAt": b.CreatedAt,
		"updatedAt": b.UpdatedAt,
	}
}
