// internal/domain/credit.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credit is a credit line attached to exactly one bank (at most one live
// credit per bank, enforced by a unique constraint on bank_id). Its lifecycle
// is independent of the parent bank's, but it is only reachable through the
// parent bank's id.
type Credit struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	BankID    uuid.UUID       `db:"bank_id" json:"bankId"`
	Name      string          `db:"name" json:"name"`
	Value     decimal.Decimal `db:"value" json:"value"`
	DueDate   time.Time       `db:"due_date" json:"dueDate"`
	IsAlive   bool            `db:"is_alive" json:"isAlive"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// NewCredit creates a new live Credit attached to the given bank.
func NewCredit(bankID uuid.UUID, name string, value decimal.Decimal, dueDate time.Time) *Credit {
	now := time.Now().UTC()
	return &Credit{
		ID:        uuid.New(),
		BankID:    bankID,
		Name:      name,
		Value:     value,
		DueDate:   dueDate,
		IsAlive:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns the credit's field values with its primary key and parent
// key stripped, for embedding in a historic entry.
func (c *Credit) Snapshot() Snapshot {
	return Snapshot{
		"name":      c.Name,
		"value":     c.Value,
		"dueDate":   c.DueDate,
		"isAlive":   c.IsAlive,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}
