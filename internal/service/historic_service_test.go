// internal/service/historic_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/util"
)

func TestHistoricFindAll_ReturnsOwnerEntries(t *testing.T) {
	userRepo := new(MockUserRepository)
	historicRepo := new(MockHistoricRepository)
	dbExec := new(MockDBExecutor)
	svc := NewHistoricService(dbExec, userRepo, historicRepo)

	entries := []domain.Historic{
		*domain.NewHistoric(testEmail, domain.OperationCreate, domain.ModelBank, nil, nil),
		*domain.NewHistoric(testEmail, domain.OperationDelete, domain.ModelBank, nil, nil),
	}

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(testUser(), nil)
	historicRepo.On("GetHistoricsByUserEmail", mock.Anything, mock.Anything, testEmail).Return(entries, nil)

	got, err := svc.FindAllByEmail(context.Background(), testEmail, testEmail)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHistoricFindAll_ForbiddenForNonOwner(t *testing.T) {
	userRepo := new(MockUserRepository)
	historicRepo := new(MockHistoricRepository)
	dbExec := new(MockDBExecutor)
	svc := NewHistoricService(dbExec, userRepo, historicRepo)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(testUser(), nil)

	_, err := svc.FindAllByEmail(context.Background(), testEmail, testIntrud)

	assert.ErrorIs(t, err, util.ErrForbidden)
	historicRepo.AssertNotCalled(t, "GetHistoricsByUserEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoricFindAll_UnknownUserNotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	historicRepo := new(MockHistoricRepository)
	dbExec := new(MockDBExecutor)
	svc := NewHistoricService(dbExec, userRepo, historicRepo)

	userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(nil, util.ErrNotFound)

	_, err := svc.FindAllByEmail(context.Background(), testEmail, testEmail)

	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
