// internal/service/historic_service.go
package service

import (
	"context"
	"fmt"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// HistoricService defines the read-only query facade over the audit trail.
type HistoricService interface {
	FindAllByEmail(ctx context.Context, email, caller string) ([]domain.Historic, error)
}

type historicService struct {
	dbExecutor   repository.DBExecutor
	userRepo     repository.UserRepository
	historicRepo repository.HistoricRepository
}

// NewHistoricService creates a new instance of HistoricService.
func NewHistoricService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	historicRepo repository.HistoricRepository,
) HistoricService {
	return &historicService{
		dbExecutor:   dbExecutor,
		userRepo:     userRepo,
		historicRepo: historicRepo,
	}
}

// FindAllByEmail lists the audit entries for a user, newest first. Only the
// user themselves may read their trail.
func (s *historicService) FindAllByEmail(ctx context.Context, email, caller string) ([]domain.Historic, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("user email '%s' not found: %w", email, util.ErrUserNotFound)
		}
		return nil, fmt.Errorf("list historics: %w", err)
	}

	if caller != email {
		return nil, fmt.Errorf("token subject does not own '%s': %w", email, util.ErrForbidden)
	}

	return s.historicRepo.GetHistoricsByUserEmail(ctx, s.dbExecutor, email)
}
