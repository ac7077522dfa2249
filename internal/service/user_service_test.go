// internal/service/user_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/hethus/Bank-Control-API/internal/auth"
	"github.com/hethus/Bank-Control-API/internal/domain"
	"github.com/hethus/Bank-Control-API/internal/util"
)

type userServiceFixture struct {
	userRepo     *MockUserRepository
	bankRepo     *MockBankRepository
	historicRepo *MockHistoricRepository
	tx           *MockTxController
	svc          UserService
}

func newUserServiceFixture() *userServiceFixture {
	f := &userServiceFixture{
		userRepo:     new(MockUserRepository),
		bankRepo:     new(MockBankRepository),
		historicRepo: new(MockHistoricRepository),
		tx:           new(MockTxController),
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	begin, commit, rollback := testTxFuncs(f.tx)
	f.svc = NewUserService(nil, nil, f.userRepo, f.bankRepo, f.historicRepo, tokens, begin, commit, rollback)
	return f
}

func TestCreateUser_HashesPasswordAndWritesHistoric(t *testing.T) {
	f := newUserServiceFixture()

	f.userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == testEmail && u.Password != "secret1" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
	})).Return(nil)
	f.historicRepo.On("CreateHistoric", mock.Anything, mock.Anything, mock.MatchedBy(func(h *domain.Historic) bool {
		return h.Operation == domain.OperationCreate && h.Model == domain.ModelUser && h.UserEmail == testEmail
	})).Return(nil)
	f.tx.On("Commit").Return(nil)

	user, err := f.svc.Create(context.Background(), CreateUserInput{Name: "Ana", Email: testEmail, Password: "secret1"})

	assert.NoError(t, err)
	assert.True(t, user.UserValue.IsZero())
	assert.True(t, user.UserCredit.IsZero())
	f.historicRepo.AssertNumberOfCalls(t, "CreateHistoric", 1)
	f.userRepo.AssertExpectations(t)
}

func TestCreateUser_MissingFieldsRejected(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.svc.Create(context.Background(), CreateUserInput{Name: "Ana", Email: "", Password: "secret1"})

	assert.ErrorIs(t, err, util.ErrInvalidInput)
	f.userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	f := newUserServiceFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcryptCost)
	user := domain.NewUser("Ana", testEmail, string(hash))

	f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(user, nil)

	token, err := f.svc.Login(context.Background(), testEmail, "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The issued token's subject must be the user's email.
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	subject, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, testEmail, subject)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	f := newUserServiceFixture()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcryptCost)
	user := domain.NewUser("Ana", testEmail, string(hash))

	f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(user, nil)

	_, err := f.svc.Login(context.Background(), testEmail, "wrong")

	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestLogin_UnknownEmailUnauthorized(t *testing.T) {
	f := newUserServiceFixture()

	f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, testEmail).Return(nil, util.ErrNotFound)

	_, err := f.svc.Login(context.Background(), testEmail, "secret1")

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestUpdateUser_EmailImmutable(t *testing.T) {
	f := newUserServiceFixture()
	newEmail := "new@x.com"

	_, err := f.svc.Update(context.Background(), "any-id", UpdateUserInput{Email: &newEmail}, testEmail)

	assert.ErrorIs(t, err, util.ErrNotAcceptable)
	f.userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	f.historicRepo.AssertNotCalled(t, "CreateHistoric", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	f := newUserServiceFixture()
	user := testUser()
	newPassword := "newsecret"

	f.userRepo.On("GetUserByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)
	f.bankRepo.On("GetBanksByUserEmail", mock.Anything, mock.Anything, testEmail, false).Return([]domain.Bank{}, nil)
	f.userRepo.On("UpdateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPassword)) == nil
	})).Return(nil)
	f.historicRepo.On("CreateHistoric", mock.Anything, mock.Anything, mock.MatchedBy(func(h *domain.Historic) bool {
		return h.Operation == domain.OperationUpdate && h.Model == domain.ModelUser
	})).Return(nil)
	f.tx.On("Commit").Return(nil)

	_, err := f.svc.Update(context.Background(), user.ID.String(), UpdateUserInput{Password: &newPassword}, testEmail)

	assert.NoError(t, err)
	f.userRepo.AssertExpectations(t)
}

func TestUpdateUser_ForbiddenForNonOwner(t *testing.T) {
	f := newUserServiceFixture()
	user := testUser()
	name := "Eve"

	f.userRepo.On("GetUserByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)

	_, err := f.svc.Update(context.Background(), user.ID.String(), UpdateUserInput{Name: &name}, testIntrud)

	assert.ErrorIs(t, err, util.ErrForbidden)
	f.userRepo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindOneUser_MalformedIDNotAcceptable(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.svc.FindOne(context.Background(), "garbage", testEmail)

	assert.ErrorIs(t, err, util.ErrMalformedID)
}

func TestDeleteUser_RemovesHistoricsInSameTransaction(t *testing.T) {
	f := newUserServiceFixture()
	user := testUser()

	f.userRepo.On("GetUserByID", mock.Anything, mock.Anything, user.ID).Return(user, nil)
	f.bankRepo.On("GetBanksByUserEmail", mock.Anything, mock.Anything, testEmail, false).Return([]domain.Bank{}, nil)
	f.userRepo.On("DeleteUser", mock.Anything, mock.Anything, user.ID).Return(nil)
	f.historicRepo.On("DeleteHistoricsByUserEmail", mock.Anything, mock.Anything, testEmail).Return(nil)
	f.tx.On("Commit").Return(nil)

	err := f.svc.Delete(context.Background(), user.ID.String(), testEmail)

	assert.NoError(t, err)
	f.historicRepo.AssertCalled(t, "DeleteHistoricsByUserEmail", mock.Anything, mock.Anything, testEmail)
	f.userRepo.AssertExpectations(t)
}
