// internal/service/ownership.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/util"
)

// ownershipResolver resolves the owning user of a resource and checks the
// token subject against it. Every secured service method goes through one of
// these helpers before mutating anything.
type ownershipResolver struct {
	userRepo repository.UserRepository
	bankRepo repository.BankRepository
}

// verifyEmailOwner loads the user row by email and checks the caller subject
// against it, without fetching the owned banks. For callers that go on to run
// their own bank query.
func (o *ownershipResolver) verifyEmailOwner(ctx context.Context, q repository.DBExecutor, email, caller string) (*domain.User, error) {
	user, err := o.userRepo.GetUserByEmail(ctx, q, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("user email '%s' not found: %w", email, util.ErrUserNotFound)
		}
		return nil, err
	}

	if caller != user.Email {
		return nil, fmt.Errorf("token subject does not own '%s': %w", email, util.ErrForbidden)
	}

	return user, nil
}

// verifyEmailAndReturnUser loads the user aggregate (with owned banks) by
// email and checks that the caller subject matches it.
func (o *ownershipResolver) verifyEmailAndReturnUser(ctx context.Context, q repository.DBExecutor, email, caller string) (*domain.User, error) {
	user, err := o.verifyEmailOwner(ctx, q, email, caller)
	if err != nil {
		return nil, err
	}

	banks, err := o.bankRepo.GetBanksByUserEmail(ctx, q, email, false)
	if err != nil {
		return nil, err
	}
	user.Banks = banks

	return user, nil
}

// verifyIDAndReturnUser is the id-keyed twin of verifyEmailAndReturnUser.
// A malformed id is NotAcceptable, not NotFound: the caller sent garbage, not
// a well-formed but absent key.
func (o *ownershipResolver) verifyIDAndReturnUser(ctx context.Context, q repository.DBExecutor, id, caller string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid ID: %w", id, util.ErrMalformedID)
	}

	user, err := o.userRepo.GetUserByID(ctx, q, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("user id '%s' not found: %w", id, util.ErrUserNotFound)
		}
		return nil, err
	}

	if caller != user.Email {
		return nil, fmt.Errorf("token subject does not own user '%s': %w", id, util.ErrForbidden)
	}

	banks, err := o.bankRepo.GetBanksByUserEmail(ctx, q, user.Email, false)
	if err != nil {
		return nil, err
	}
	user.Banks = banks

	return user, nil
}
