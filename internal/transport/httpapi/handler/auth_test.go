package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saverfox/saverfox/internal/platform/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, identifier, password string) (*user.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

func TestAuthHandler_Register(t *testing.T) {
	userID := uuid.New()
	registered := &user.User{ID: userID, Username: "kid", Email: "k@x.io"}

	t.Run("creates the account and returns a token", func(t *testing.T) {
		users := new(MockUserService)
		jwts := new(MockJWTService)
		users.On("Register", mock.Anything, "kid", "k@x.io", "Secret123").Return(registered, nil)
		jwts.On("GenerateToken", userID, "kid").Return("tok123", nil)

		h := NewAuthHandler(users, jwts)
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"kid","email":"k@x.io","password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, userID.String(), resp.UserID)
		assert.Equal(t, "tok123", resp.Token)
	})

	t.Run("duplicate account maps to 409 envelope", func(t *testing.T) {
		users := new(MockUserService)
		jwts := new(MockJWTService)
		users.On("Register", mock.Anything, "kid", "k@x.io", "Secret123").Return(nil, user.ErrUserAlreadyExists)

		h := NewAuthHandler(users, jwts)
		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"username":"kid","email":"k@x.io","password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var envelope ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, http.StatusConflict, envelope.StatusCode)
		assert.Equal(t, "Conflict", envelope.Error)
		assert.Equal(t, "/auth/register", envelope.Path)
		assert.NotEmpty(t, envelope.Timestamp)
	})

	t.Run("invalid body maps to 400", func(t *testing.T) {
		h := NewAuthHandler(new(MockUserService), new(MockJWTService))
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()
	authenticated := &user.User{ID: userID, Username: "kid", Email: "k@x.io"}

	t.Run("logs in by username", func(t *testing.T) {
		users := new(MockUserService)
		jwts := new(MockJWTService)
		users.On("Login", mock.Anything, "kid", "Secret123").Return(authenticated, nil)
		jwts.On("GenerateToken", userID, "kid").Return("tok456", nil)

		h := NewAuthHandler(users, jwts)
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"kid","password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok456", resp.Token)
	})

	t.Run("falls back to email as identifier", func(t *testing.T) {
		users := new(MockUserService)
		jwts := new(MockJWTService)
		users.On("Login", mock.Anything, "k@x.io", "Secret123").Return(authenticated, nil)
		jwts.On("GenerateToken", userID, "kid").Return("tok789", nil)

		h := NewAuthHandler(users, jwts)
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"k@x.io","password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Login", mock.Anything, "kid", "wrong").Return(nil, user.ErrInvalidCredentials)

		h := NewAuthHandler(users, new(MockJWTService))
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"kid","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing identifier maps to 400", func(t *testing.T) {
		h := NewAuthHandler(new(MockUserService), new(MockJWTService))
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
