// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController is a mock transaction controller that also satisfies
// repository.DBExecutor, mirroring what *sqlx.Tx provides.
type MockTxController struct {
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// testTxFuncs returns begin/commit/rollback functions that hand out the given
// mock controller instead of a real transaction.
func testTxFuncs(tx *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return tx, nil
	}
	commit := func(tx db.TxController) error {
		return tx.Commit()
	}
	rollback := func(tx db.TxController) {}
	return begin, commit, rollback
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustAggregates(ctx context.Context, q repository.DBExecutor, email string, valueDelta, creditDelta decimal.Decimal) error {
	args := m.Called(ctx, q, email, valueDelta, creditDelta)
	return args.Error(0)
}

// MockBankRepository is a mock implementation of repository.BankRepository.
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) CreateBank(ctx context.Context, q repository.DBExecutor, bank *domain.Bank) error {
	args := m.Called(ctx, q, bank)
	return args.Error(0)
}

func (m *MockBankRepository) GetBankByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Bank, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) GetBanksByUserEmail(ctx context.Context, q repository.DBExecutor, email string, liveOnly bool) ([]domain.Bank, error) {
	args := m.Called(ctx, q, email, liveOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

func (m *MockBankRepository) UpdateBankName(ctx context.Context, q repository.DBExecutor, id uuid.UUID, name string) error {
	args := m.Called(ctx, q, id, name)
	return args.Error(0)
}

func (m *MockBankRepository) SetBankAlive(ctx context.Context, q repository.DBExecutor, id uuid.UUID, alive bool) error {
	args := m.Called(ctx, q, id, alive)
	return args.Error(0)
}

// MockCreditRepository is a mock implementation of repository.CreditRepository.
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) CreateCredit(ctx context.Context, q repository.DBExecutor, credit *domain.Credit) error {
	args := m.Called(ctx, q, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) GetCreditByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Credit, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) GetCreditByBankID(ctx context.Context, q repository.DBExecutor, bankID uuid.UUID) (*domain.Credit, error) {
	args := m.Called(ctx, q, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) UpdateCredit(ctx context.Context, q repository.DBExecutor, id uuid.UUID, upd repository.CreditUpdate) (*domain.Credit, error) {
	args := m.Called(ctx, q, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) SetCreditAlive(ctx context.Context, q repository.DBExecutor, id uuid.UUID, alive bool) error {
	args := m.Called(ctx, q, id, alive)
	return args.Error(0)
}

// MockHistoricRepository is a mock implementation of repository.HistoricRepository.
type MockHistoricRepository struct {
	mock.Mock
}

func (m *MockHistoricRepository) CreateHistoric(ctx context.Context, q repository.DBExecutor, historic *domain.Historic) error {
	args := m.Called(ctx, q, historic)
	return args.Error(0)
}

func (m *MockHistoricRepository) GetHistoricsByUserEmail(ctx context.Context, q repository.DBExecutor, email string) ([]domain.Historic, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Historic), args.Error(1)
}

func (m *MockHistoricRepository) DeleteHistoricsByUserEmail(ctx context.Context, q repository.DBExecutor, email string) error {
	args := m.Called(ctx, q, email)
	return args.Error(0)
}

// decimalEq matches a decimal argument by numeric equality rather than
// internal representation.
func decimalEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expected)
	})
}
