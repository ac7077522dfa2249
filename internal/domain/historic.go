// internal/domain/historic.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Operation verbs recorded in historic entries. Credit soft-delete uses
// "Remove" while bank soft-delete uses "Delete"; the asymmetry is part of the
// recorded vocabulary and must not be unified.
const (
	OperationCreate = "Create"
	OperationUpdate = "Update"
	OperationDelete = "Delete"
	OperationRemove = "Remove"
	OperationAlive  = "Alive"
)

// Model names recorded in historic entries.
const (
	ModelBank   = "Bank"
	ModelCredit = "Credit"
	ModelUser   = "User"
)

// Snapshot holds a denormalized copy of an entity's fields at the time of a
// mutation, stored as JSONB. Primary keys and owner keys are never included.
type Snapshot map[string]any

// Value implements driver.Valuer for JSONB storage.
func (s Snapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (s *Snapshot) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("snapshot: cannot scan %T", src)
	}
	return json.Unmarshal(b, s)
}

// Historic is an immutable, append-only audit record of a single mutation.
// Rows are never updated; they are deleted only en masse when the owning user
// is removed.
type Historic struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserEmail string    `db:"user_email" json:"userEmail"`
	Operation string    `db:"operation" json:"operation"`
	Model     string    `db:"model" json:"model"`
	Where     *string   `db:"where_label" json:"where,omitempty"` // e.g. parent bank name for credit entries
	Snapshot  Snapshot  `db:"snapshot" json:"snapshot,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewHistoric creates a new Historic entry for the given operation.
func NewHistoric(userEmail, operation, model string, where *string, snapshot Snapshot) *Historic {
	return &Historic{
		ID:        uuid.New(),
		UserEmail: userEmail,
		Operation: operation,
		Model:     model,
		Where:     where,
		Snapshot:  snapshot,
		CreatedAt: time.Now().UTC(),
	}
}
