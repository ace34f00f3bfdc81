package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farhan-shop/shop-api/internal/auth"
	shopHttp "github.com/farhan-shop/shop-api/internal/handler/http"
	"github.com/farhan-shop/shop-api/internal/user"
)

const testSecret = "test-signing-secret"

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, password, email string) (*user.User, error) {
	args := m.Called(ctx, username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func newUserRouter(service user.Service, tokens *auth.TokenManager) chi.Router {
	handler := shopHttp.NewUserHandler(service, tokens)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestUserHandler_handleRegister_Success(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	registeredUser := user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "alice",
		Email:    "a@x.com",
	}

	mockService.On("Register", mock.Anything, "alice", "pw123", "a@x.com").
		Return(&registeredUser, nil).
		Once()

	body := []byte(`{"username":"alice","password":"pw123","email":"a@x.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleRegister_Duplicate(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	mockService.On("Register", mock.Anything, "alice", "pw123", "a@x.com").
		Return(nil, user.ErrUserExists).
		Once()

	body := []byte(`{"username":"alice","password":"pw123","email":"a@x.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var errorResponse map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Contains(t, errorResponse["error"], "already registered")
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleRegister_MissingFields(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	body := []byte(`{"username":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse shopHttp.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
	assert.Contains(t, errorResponse.Details, "Password")
	assert.Contains(t, errorResponse.Details, "Email")
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_handleLogin_Success(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	userID := uuid.Must(uuid.NewV4())
	authenticatedUser := user.User{
		ID:       userID,
		Username: "alice",
		Email:    "a@x.com",
	}

	mockService.On("Authenticate", mock.Anything, "alice", "pw123").
		Return(&authenticatedUser, nil).
		Once()

	body := []byte(`{"username":"alice","password":"pw123"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response shopHttp.LoginResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "alice", response.Username)
	require.NotEmpty(t, response.Token)

	// The returned token must verify and carry the user's identity.
	claims, err := tokens.Verify(response.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleLogin_InvalidCredentials(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	mockService.On("Authenticate", mock.Anything, "alice", "wrong").
		Return(nil, user.ErrInvalidCredentials).
		Once()

	body := []byte(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	mockService.AssertExpectations(t)
}

func TestUserHandler_handleLogin_MissingFields(t *testing.T) {
	mockService := new(MockUserService)
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)
	router := newUserRouter(mockService, tokens)

	body := []byte(`{"username":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}
