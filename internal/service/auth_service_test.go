// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"papertrade/internal/domain"
	"papertrade/internal/lib/jwt"
	"papertrade/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (*MockUserRepository, AuthService) {
	t.Helper()
	userRepo := new(MockUserRepository)
	svc := NewAuthService(new(MockDBExecutor), userRepo, util.GetLogger(), testSecret, time.Hour)
	return userRepo, svc
}

func TestRegister_Success(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ann").
		Return(nil, util.ErrNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "ann" && u.Cash.Equal(domain.StartingCash)
	})).Return(nil)

	user, err := svc.Register(context.Background(), "ann", "Str0ng!1", "Str0ng!1")
	require.NoError(t, err)

	// Only a salted one-way hash is stored, and it verifies.
	assert.NotEqual(t, "Str0ng!1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!1")))
	userRepo.AssertExpectations(t)
}

func TestRegister_WeakPassword(t *testing.T) {
	_, svc := newAuthFixture(t)

	weak := []string{
		"weak",       // too short
		"short!1",    // still too short
		"nodigits!!", // no digit
		"nosymbol11", // no symbol from the required set
	}
	for _, password := range weak {
		_, err := svc.Register(context.Background(), "ann", password, password)
		assert.ErrorIs(t, err, util.ErrWeakPassword, "password=%q", password)
	}
}

func TestRegister_Mismatch(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "ann", "Str0ng!1", "Str0ng!2")
	assert.ErrorIs(t, err, util.ErrPasswordMismatch)
}

func TestRegister_EmptyUsername(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "", "Str0ng!1", "Str0ng!1")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestRegister_UsernameTaken(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ann").
		Return(&domain.User{ID: 1, Username: "ann"}, nil)

	_, err := svc.Register(context.Background(), "ann", "Str0ng!1", "Str0ng!1")
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_UsernameRaceLosesCleanly(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	// Pre-check passes, but a concurrent registration wins the insert and the
	// store's unique constraint fires.
	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ann").
		Return(nil, util.ErrNotFound)
	userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).
		Return(util.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), "ann", "Str0ng!1", "Str0ng!1")
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!1"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ann").
		Return(&domain.User{ID: 7, Username: "ann", PasswordHash: string(hash), Cash: decimal.NewFromInt(10000)}, nil)

	token, err := svc.Login(context.Background(), "ann", "Str0ng!1")
	require.NoError(t, err)

	userID, err := jwt.ParseUserID(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!1"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ann").
		Return(&domain.User{ID: 7, Username: "ann", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), "ann", "not-it")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	userRepo.On("GetUserByUsername", mock.Anything, mock.Anything, "ghost").
		Return(nil, util.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost", "whatever1!")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
