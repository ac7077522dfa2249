// internal/service/credit_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
	"github.com/hethus/Bank-Control-API/pkg/db"
)

// dueDateLayout is the wire format for credit due dates.
const dueDateLayout = "2006-01-02"

// CreateCreditInput carries the fields for attaching a credit line to a bank.
type CreateCreditInput struct {
	Name    string
	Value   decimal.Decimal
	DueDate string
}

// UpdateCreditInput carries the optional fields of a partial credit update.
type UpdateCreditInput struct {
	Name    *string
	Value   *decimal.Decimal
	DueDate *string
}

// CreditService defines the interface for credit lifecycle business logic.
// All operations are scoped under the parent bank's id; a credit is never
// addressable without it.
type CreditService interface {
	Create(ctx context.Context, bankID string, in CreateCreditInput, caller string) (*domain.Credit, error)
	Update(ctx context.Context, bankID, creditID string, in UpdateCreditInput, caller string) (*domain.Credit, error)
	SoftDelete(ctx context.Context, bankID, creditID, caller string) (*domain.Credit, error)
	Reactivate(ctx context.Context, bankID, creditID, caller string) (*domain.Credit, error)
}

type creditService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	userRepo     repository.UserRepository
	bankRepo     repository.BankRepository
	creditRepo   repository.CreditRepository
	historicRepo repository.HistoricRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewCreditService creates a new instance of CreditService.
func NewCreditService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	bankRepo repository.BankRepository,
	creditRepo repository.CreditRepository,
	historicRepo repository.HistoricRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) CreditService {
	return &creditService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		userRepo:     userRepo,
		bankRepo:     bankRepo,
		creditRepo:   creditRepo,
		historicRepo: historicRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// Create attaches a credit line to the bank and adds its value to the owner's
// userCredit total. The unique constraint on bank_id rejects a second credit.
// The historic entry's "where" field records the parent bank's name.
func (s *creditService) Create(ctx context.Context, bankID string, in CreateCreditInput, caller string) (*domain.Credit, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("create credit: name is required: %w", util.ErrInvalidInput)
	}
	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create credit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create credit: transaction controller does not implement DBExecutor")
	}

	bank, err := s.loadOwnedBank(ctx, txExecutor, bankID, caller)
	if err != nil {
		return nil, err
	}

	credit := domain.NewCredit(bank.ID, in.Name, in.Value, dueDate)
	if err := s.creditRepo.CreateCredit(ctx, txExecutor, credit); err != nil {
		return nil, fmt.Errorf("create credit: %w", err)
	}

	historic := domain.NewHistoric(bank.UserEmail, domain.OperationCreate, domain.ModelCredit, &bank.Name, credit.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("create credit: failed to create historic: %w", err)
	}

	if err := s.userRepo.AdjustAggregates(ctx, txExecutor, bank.UserEmail, decimal.Zero, credit.Value); err != nil {
		return nil, fmt.Errorf("create credit: failed to adjust user credit: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create credit: failed to commit transaction: %w", err)
	}

	return credit, nil
}

// Update applies a partial update to the credit. When the payload carries a
// value, the owner's userCredit total is incremented by the new value rather
// than by the difference from the old one. That additive behavior is what the
// system has always recorded and callers reconcile against it.
func (s *creditService) Update(ctx context.Context, bankID, creditID string, in UpdateCreditInput, caller string) (*domain.Credit, error) {
	upd := repository.CreditUpdate{Name: in.Name, Value: in.Value}
	if in.DueDate != nil {
		dueDate, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		upd.DueDate = &dueDate
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update credit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update credit: transaction controller does not implement DBExecutor")
	}

	bank, err := s.loadOwnedBank(ctx, txExecutor, bankID, caller)
	if err != nil {
		return nil, err
	}

	credit, err := s.loadCredit(ctx, txExecutor, bank, creditID)
	if err != nil {
		return nil, err
	}

	updated, err := s.creditRepo.UpdateCredit(ctx, txExecutor, credit.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update credit: %w", err)
	}

	historic := domain.NewHistoric(bank.UserEmail, domain.OperationUpdate, domain.ModelCredit, &bank.Name, updated.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("update credit: failed to create historic: %w", err)
	}

	if in.Value != nil {
		if err := s.userRepo.AdjustAggregates(ctx, txExecutor, bank.UserEmail, decimal.Zero, *in.Value); err != nil {
			return nil, fmt.Errorf("update credit: failed to adjust user credit: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update credit: failed to commit transaction: %w", err)
	}

	return updated, nil
}

// SoftDelete marks the credit dead and removes its value from the owner's
// userCredit total. The recorded operation verb is "Remove".
func (s *creditService) SoftDelete(ctx context.Context, bankID, creditID, caller string) (*domain.Credit, error) {
	return s.transition(ctx, bankID, creditID, caller, false)
}

// Reactivate brings a dead credit back and restores its value to the owner's
// userCredit total.
func (s *creditService) Reactivate(ctx context.Context, bankID, creditID, caller string) (*domain.Credit, error) {
	return s.transition(ctx, bankID, creditID, caller, true)
}

func (s *creditService) transition(ctx context.Context, bankID, creditID, caller string, alive bool) (*domain.Credit, error) {
	op := "remove credit"
	if alive {
		op = "reactivate credit"
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}

	bank, err := s.loadOwnedBank(ctx, txExecutor, bankID, caller)
	if err != nil {
		return nil, err
	}

	credit, err := s.loadCredit(ctx, txExecutor, bank, creditID)
	if err != nil {
		return nil, err
	}

	if credit.IsAlive == alive {
		if alive {
			return nil, fmt.Errorf("credit '%s' is already active: %w", creditID, util.ErrNotAcceptable)
		}
		return nil, fmt.Errorf("credit '%s' is already removed: %w", creditID, util.ErrNotAcceptable)
	}

	if err := s.creditRepo.SetCreditAlive(ctx, txExecutor, credit.ID, alive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	credit.IsAlive = alive

	operation := domain.OperationRemove
	creditDelta := credit.Value.Neg()
	if alive {
		operation = domain.OperationAlive
		creditDelta = credit.Value
	}

	historic := domain.NewHistoric(bank.UserEmail, operation, domain.ModelCredit, &bank.Name, credit.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("%s: failed to create historic: %w", op, err)
	}

	if err := s.userRepo.AdjustAggregates(ctx, txExecutor, bank.UserEmail, decimal.Zero, creditDelta); err != nil {
		return nil, fmt.Errorf("%s: failed to adjust user credit: %w", op, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return credit, nil
}

// loadOwnedBank parses the bank id, fetches the bank and checks the caller
// owns it.
func (s *creditService) loadOwnedBank(ctx context.Context, q repository.DBExecutor, id, caller string) (*domain.Bank, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid ID: %w", id, util.ErrMalformedID)
	}
	bank, err := s.bankRepo.GetBankByID(ctx, q, parsed)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("bank id '%s' not found: %w", id, util.ErrBankNotFound)
		}
		return nil, err
	}
	if caller != bank.UserEmail {
		return nil, fmt.Errorf("token subject does not own bank '%s': %w", id, util.ErrForbidden)
	}
	return bank, nil
}

// loadCredit fetches the credit and checks it actually hangs off the given
// bank; a credit id under someone else's bank path is NotFound, not Forbidden.
func (s *creditService) loadCredit(ctx context.Context, q repository.DBExecutor, bank *domain.Bank, creditID string) (*domain.Credit, error) {
	parsed, err := uuid.Parse(creditID)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid ID: %w", creditID, util.ErrMalformedID)
	}
	credit, err := s.creditRepo.GetCreditByID(ctx, q, parsed)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("credit id '%s' not found: %w", creditID, util.ErrCreditNotFound)
		}
		return nil, err
	}
	if credit.BankID != bank.ID {
		return nil, fmt.Errorf("credit id '%s' not found on bank '%s': %w", creditID, bank.ID, util.ErrCreditNotFound)
	}
	return credit, nil
}

// parseDueDate accepts the date-only wire format and falls back to RFC 3339.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dueDateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' is not a valid due date: %w", raw, util.ErrInvalidInput)
	}
	return t, nil
}
