// internal/api/handler/auth_test.go
package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"papertrade/internal/domain"
	"papertrade/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	args := m.Called(ctx, username, password, confirmation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func TestRegisterHandler_Success(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, util.GetLogger())

	svc.On("Register", mock.Anything, "ann", "Str0ng!1", "Str0ng!1").
		Return(&domain.User{ID: 1, Username: "ann", Cash: decimal.NewFromInt(10000)}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"ann","password":"Str0ng!1","confirmation":"Str0ng!1"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterHandler_UsernameTaken(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, util.GetLogger())

	svc.On("Register", mock.Anything, "ann", "Str0ng!1", "Str0ng!1").
		Return(nil, util.ErrUsernameTaken)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"ann","password":"Str0ng!1","confirmation":"Str0ng!1"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandler_WeakPassword(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, util.GetLogger())

	svc.On("Register", mock.Anything, "ann", "weak", "weak").
		Return(nil, util.ErrWeakPassword)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"ann","password":"weak","confirmation":"weak"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, util.GetLogger())

	svc.On("Login", mock.Anything, "ann", "Str0ng!1").Return("a.b.c", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"ann","password":"Str0ng!1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a.b.c")
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, util.GetLogger())

	svc.On("Login", mock.Anything, "ann", "nope").Return("", util.ErrInvalidCredentials)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"ann","password":"nope"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
