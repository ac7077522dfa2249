// internal/repository/historic_repo.go
package repository

import (
	"context"

	"github.com/hethus/Bank-Control-API/internal/domain"
)

// HistoricRepository defines the interface for audit-trail data operations.
// Historic rows are append-only: there is no update method, and deletion is
// only possible en masse when the owning user is removed.
type HistoricRepository interface {
	// CreateHistoric appends one audit entry.
	CreateHistoric(ctx context.Context, q DBExecutor, historic *domain.Historic) error
	// GetHistoricsByUserEmail lists all audit entries for a user, newest first.
	GetHistoricsByUserEmail(ctx context.Context, q DBExecutor, email string) ([]domain.Historic, error)
	// DeleteHistoricsByUserEmail removes every audit entry belonging to a user.
	DeleteHistoricsByUserEmail(ctx context.Context, q DBExecutor, email string) error
}
