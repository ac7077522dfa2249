// internal/service/bank_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
	"github.com/hethus/Bank-Control-API/pkg/db"
)

// CreateBankInput carries the fields for opening a bank account.
type CreateBankInput struct {
	Name  string
	Value decimal.Decimal
}

// UpdateBankInput carries the optional fields of a partial bank update.
// Value is present only so the service can reject attempts to change it: the
// opening balance is write-once.
type UpdateBankInput struct {
	Name  *string
	Value *decimal.Decimal
}

// BankService defines the interface for bank lifecycle business logic.
// Every mutating method runs its entity mutation, the aggregate adjustment on
// the owning user, and the historic write inside one database transaction.
type BankService interface {
	Create(ctx context.Context, ownerEmail string, in CreateBankInput, caller string) (*domain.Bank, error)
	FindOne(ctx context.Context, id, caller string) (*domain.Bank, error)
	FindAll(ctx context.Context, ownerEmail, caller string) ([]domain.Bank, error)
	Update(ctx context.Context, id string, in UpdateBankInput, caller string) (*domain.Bank, error)
	SoftDelete(ctx context.Context, id, caller string) (*domain.Bank, error)
	Reactivate(ctx context.Context, id, caller string) (*domain.Bank, error)
}

type bankService struct {
	ownershipResolver
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	creditRepo   repository.CreditRepository
	historicRepo repository.HistoricRepository
	listLiveOnly bool
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewBankService creates a new instance of BankService. listLiveOnly controls
// whether FindAll filters out soft-deleted banks.
func NewBankService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	bankRepo repository.BankRepository,
	creditRepo repository.CreditRepository,
	historicRepo repository.HistoricRepository,
	listLiveOnly bool,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) BankService {
	return &bankService{
		ownershipResolver: ownershipResolver{userRepo: userRepo, bankRepo: bankRepo},
		dbBeginner:        dbBeginner,
		dbExecutor:        dbExecutor,
		creditRepo:        creditRepo,
		historicRepo:      historicRepo,
		listLiveOnly:      listLiveOnly,
		beginTx:           beginTx,
		commitTx:          commitTx,
		rollbackTx:        rollbackTx,
	}
}

// Create opens a new bank account for the given owner. The owner's userValue
// total is incremented only when the opening balance is positive, and only in
// the same transaction as the bank insert and the historic write: either all
// three commit or none do.
func (s *bankService) Create(ctx context.Context, ownerEmail string, in CreateBankInput, caller string) (*domain.Bank, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("create bank: name is required: %w", util.ErrInvalidInput)
	}
	if in.Value.IsNegative() {
		return nil, fmt.Errorf("create bank: value must not be negative: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create bank: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create bank: transaction controller does not implement DBExecutor")
	}

	if _, err := s.verifyEmailAndReturnUser(ctx, txExecutor, ownerEmail, caller); err != nil {
		return nil, err
	}

	bank := domain.NewBank(ownerEmail, in.Name, in.Value)
	if err := s.bankRepo.CreateBank(ctx, txExecutor, bank); err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}

	historic := domain.NewHistoric(ownerEmail, domain.OperationCreate, domain.ModelBank, nil, bank.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("create bank: failed to create historic: %w", err)
	}

	if bank.Value.IsPositive() {
		if err := s.userRepo.AdjustAggregates(ctx, txExecutor, ownerEmail, bank.Value, decimal.Zero); err != nil {
			return nil, fmt.Errorf("create bank: failed to adjust user value: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create bank: failed to commit transaction: %w", err)
	}

	return bank, nil
}

// FindOne returns the bank with its live credit nested, if one is attached.
func (s *bankService) FindOne(ctx context.Context, id, caller string) (*domain.Bank, error) {
	bank, err := s.loadBank(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, err
	}

	if caller != bank.UserEmail {
		return nil, fmt.Errorf("token subject does not own bank '%s': %w", id, util.ErrForbidden)
	}

	credit, err := s.creditRepo.GetCreditByBankID(ctx, s.dbExecutor, bank.ID)
	if err != nil && !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("find bank: failed to load credit: %w", err)
	}
	if credit != nil && credit.IsAlive {
		bank.Credit = credit
	}

	return bank, nil
}

// FindAll returns the owner's banks. Soft-deleted banks are included unless
// the service was configured to list live banks only.
func (s *bankService) FindAll(ctx context.Context, ownerEmail, caller string) ([]domain.Bank, error) {
	if _, err := s.verifyEmailOwner(ctx, s.dbExecutor, ownerEmail, caller); err != nil {
		return nil, err
	}
	return s.bankRepo.GetBanksByUserEmail(ctx, s.dbExecutor, ownerEmail, s.listLiveOnly)
}

// Update renames a bank. The balance is write-once: a payload carrying a value
// is rejected as NotAcceptable regardless of the other fields. No aggregate
// changes here, since the value cannot change.
func (s *bankService) Update(ctx context.Context, id string, in UpdateBankInput, caller string) (*domain.Bank, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update bank: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update bank: transaction controller does not implement DBExecutor")
	}

	bank, err := s.loadBank(ctx, txExecutor, id)
	if err != nil {
		return nil, err
	}

	if caller != bank.UserEmail {
		return nil, fmt.Errorf("token subject does not own bank '%s': %w", id, util.ErrForbidden)
	}

	if in.Value != nil {
		return nil, fmt.Errorf("you can't update the value of the bank: %w", util.ErrNotAcceptable)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("update bank: name must not be empty: %w", util.ErrInvalidInput)
		}
		bank.Name = *in.Name
		if err := s.bankRepo.UpdateBankName(ctx, txExecutor, bank.ID, bank.Name); err != nil {
			return nil, fmt.Errorf("update bank: %w", err)
		}
	}

	historic := domain.NewHistoric(bank.UserEmail, domain.OperationUpdate, domain.ModelBank, nil, bank.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("update bank: failed to create historic: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update bank: failed to commit transaction: %w", err)
	}

	return bank, nil
}

// SoftDelete marks a bank dead and pulls its contribution out of the owner's
// totals: userValue loses the bank's balance, and userCredit loses the value
// of a live attached credit. Deleting an already-dead bank is NotAcceptable,
// not an idempotent no-op.
func (s *bankService) SoftDelete(ctx context.Context, id, caller string) (*domain.Bank, error) {
	return s.transition(ctx, id, caller, false)
}

// Reactivate is the mirror of SoftDelete: the bank comes back alive and the
// same amounts that left the owner's totals at deletion time return to them.
func (s *bankService) Reactivate(ctx context.Context, id, caller string) (*domain.Bank, error) {
	return s.transition(ctx, id, caller, true)
}

// transition implements the two-state lifecycle shared by SoftDelete and
// Reactivate. alive is the target state; arriving in a state the bank is
// already in is NotAcceptable.
func (s *bankService) transition(ctx context.Context, id, caller string, alive bool) (*domain.Bank, error) {
	op := "delete bank"
	if alive {
		op = "reactivate bank"
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

	bank, err := s.loadBank(ctx, txExecutor, id)
	if err != nil {
		return nil, err
	}

	if bank.IsAlive == alive {
		if alive {
			return nil, fmt.Errorf("bank '%s' is already active: %w", id, util.ErrNotAcceptable)
		}
		return nil, fmt.Errorf("bank '%s' is already deleted: %w", id, util.ErrNotAcceptable)
	}

	if caller != bank.UserEmail {
		return nil, fmt.Errorf("token subject does not own bank '%s': %w", id, util.ErrForbidden)
	}

	if err := s.bankRepo.SetBankAlive(ctx, txExecutor, bank.ID, alive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bank.IsAlive = alive

	operation := domain.OperationDelete
	if alive {
		operation = domain.OperationAlive
	}
	historic := domain.NewHistoric(bank.UserEmail, operation, domain.ModelBank, nil, bank.Snapshot())
	if err := s.historicRepo.CreateHistoric(ctx, txExecutor, historic); err != nil {
		return nil, fmt.Errorf("%s: failed to create historic: %w", op, err)
	}

	valueDelta := bank.Value
	creditDelta := decimal.Zero
	credit, err := s.creditRepo.GetCreditByBankID(ctx, txExecutor, bank.ID)
	if err != nil && !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("%s: failed to load credit: %w", op, err)
	}
	if credit != nil && credit.IsAlive {
		creditDelta = credit.Value
	}
	if !alive {
		valueDelta = valueDelta.Neg()
		creditDelta = creditDelta.Neg()
	}

	if err := s.userRepo.AdjustAggregates(ctx, txExecutor, bank.UserEmail, valueDelta, creditDelta); err != nil {
		return nil, fmt.Errorf("%s: failed to adjust user totals: %w", op, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return bank, nil
}

// loadBank parses the id and fetches the bank, mapping a malformed id to
// NotAcceptable and an absent one to NotFound.
func (s *bankService) loadBank(ctx context.Context, q repository.DBExecutor, id string) (*domain.Bank, error) {
	bankID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid ID: %w", id, util.ErrMalformedID)
	}
	bank, err := s.bankRepo.GetBankByID(ctx, q, bankID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("bank id '%s' not found: %w", id, util.ErrBankNotFound)
		}
		return nil, err
	}
	return bank, nil
}
