// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hethus/Bank-Control-API/internal/auth"
	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
	"github.com/hethus/Bank-Control-API/pkg/db"
)

// bcryptCost matches the cost existing password hashes were created with.
const bcryptCost = 8

// CreateUserInput carries the fields for user registration.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries the optional fields of a partial user update.
// Email is present only so the service can reject attempts to change it.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService defines the interface for user directory business logic.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	FindOne(ctx context.Context, id, caller string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput, caller string) (*domain.User, error)
	Delete(ctx context.Context, id, caller string) error
}

type userService struct {
	ownershipResolver
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	historicRepo repository.HistoricRepository
	tokens       *auth.TokenManager
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	bankRepo repository.BankRepository,
	historicRepo repository.HistoricRepository,
	tokens *auth.TokenManager,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		ownershipResolver: ownershipResolver{userRepo: userRepo, bankRepo: bankRepo},
		dbBeginner:        dbBeginner,
		dbExecutor:        dbExecutor,
		historicRepo:      historicRepo,
		tokens:            tokens,
		beginTx:           beginTx,
		commitTx:          commitTx,
		rollbackTx:        rollbackTx,
	}
}

// Create registers a new user and writes the registration audit entry.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("create user: name, email and password are required: %w", util.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create user: transaction controller does not implement DBExecutor")
	}

	user := domain.NewUser(in.Name, in.Email, string(hashed))
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	historic := domain.NewHistoric(user.Email, domain.OperationCreate, domain.ModelUser, nil, nil)
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("create user: failed to create historic: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues a bearer token whose subject is the
// user's email. Unknown email and wrong password collapse into the same error.
func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", fmt.Errorf("invalid email or password: %w", util.ErrUnauthorized)
		}
		return "", fmt.Errorf("login: failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid email or password: %w", util.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("login: failed to issue token: %w", err)
	}
	return token, nil
}

// FindOne returns the user aggregate for the given id.
func (s *userService) FindOne(ctx context.Context, id, caller string) (*domain.User, error) {
	return s.verifyIDAndReturnUser(ctx, s.dbExecutor, id, caller)
}

// Update applies a partial update to the user. The email is immutable; the
// password is re-hashed when present.
func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput, caller string) (*domain.User, error) {
	if in.Email != nil {
		return nil, fmt.Errorf("email cannot be updated: %w", util.ErrNotAcceptable)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update user: transaction controller does not implement DBExecutor")
	}

	user, err := s.verifyIDAndReturnUser(ctx, txExecutor, id, caller)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("update user: failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.UpdateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	historic := domain.NewHistoric(user.Email, domain.OperationUpdate, domain.ModelUser, nil, nil)
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("update user: failed to create historic: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Delete removes the user and, with it, every historic entry they own. This is
// the single hard-delete path in the system.
func (s *userService) Delete(ctx context.Context, id, caller string) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete user: transaction controller does not implement DBExecutor")
	}

	user, err := s.verifyIDAndReturnUser(ctx, txExecutor, id, caller)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, txExecutor, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.historicRepo.DeleteHistoricsByUserEmail(ctx, txExecutor, user.Email); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete user: failed to commit transaction: %w", err)
	}

	return nil
}
