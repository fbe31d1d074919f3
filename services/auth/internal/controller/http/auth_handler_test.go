package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/auth/internal/entity"
	"wp-lite/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) SignUp(ctx context.Context, email, password, fullName string) (*entity.User, *entity.Profile, string, error) {
	args := m.Called(email, password, fullName)
	if args.Get(0) == nil {
		return nil, nil, "", args.Error(3)
	}
	return args.Get(0).(*entity.User), args.Get(1).(*entity.Profile), args.String(2), args.Error(3)
}

func (m *MockAuthUseCase) SignIn(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetSession(ctx context.Context, s *session.Session) (*entity.User, *entity.Profile, error) {
	args := m.Called(s.UserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var profile *entity.Profile
	if p := args.Get(1); p != nil {
		profile = p.(*entity.Profile)
	}
	return args.Get(0).(*entity.User), profile, args.Error(2)
}

func (m *MockAuthUseCase) SignOut(ctx context.Context, s *session.Session) error {
	args := m.Called(s.TokenID)
	return args.Error(0)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newTestHandler(uc usecase.AuthUseCase) *AuthHandler {
	var buf bytes.Buffer
	return NewAuthHandler(uc, logger.NewWithWriters(&buf, &buf))
}

func withSession(s *session.Session, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Set(c, s)
		h(c)
	}
}

func TestSignUp_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/signup", handler.SignUp)

	name := "Ada"
	mockUseCase.On("SignUp", "ada@example.com", "secret1", "Ada").Return(
		&entity.User{ID: "user-1", Email: "ada@example.com"},
		&entity.Profile{ID: "profile-1", UserID: "user-1", Email: "ada@example.com", FullName: &name, Role: "admin"},
		"token-abc",
		nil,
	)

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "secret1", "full_name": "Ada"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token-abc", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "admin", resp.Profile.Role)
	mockUseCase.AssertExpectations(t)
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"secret1"}`},
		{"bad email", `{"email":"nope","password":"secret1"}`},
		{"short password", `{"email":"ada@example.com","password":"123"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockAuthUseCase)
			handler := newTestHandler(mockUseCase)
			router := setupTestRouter()
			router.POST("/signup", handler.SignUp)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockUseCase.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSignUp_Duplicate(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/signup", handler.SignUp)

	mockUseCase.On("SignUp", "ada@example.com", "secret1", "").Return(nil, nil, "", usecase.ErrEmailTaken)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBufferString(`{"email":"ada@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignIn(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/signin", handler.SignIn)

	mockUseCase.On("SignIn", "ada@example.com", "secret1").Return(&entity.User{ID: "user-1"}, "token-abc", nil)
	mockUseCase.On("SignIn", "ada@example.com", "wrong").Return(nil, "", usecase.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signin", bytes.NewBufferString(`{"email":"ada@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token-abc")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/signin", bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	s := &session.Session{UserID: "user-1", TokenID: "tok-1", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	router := setupTestRouter()
	router.GET("/session", withSession(s, handler.Session))

	mockUseCase.On("GetSession", "user-1").Return(&entity.User{ID: "user-1"}, nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp["profile"])
	assert.Equal(t, "2030-01-01T00:00:00Z", resp["expires_at"])
}

func TestSession_UnknownUser(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/session", withSession(&session.Session{UserID: "gone"}, handler.Session))

	mockUseCase.On("GetSession", "gone").Return(nil, nil, usecase.ErrUserNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/auth"`)
}

func TestSignOut(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := newTestHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/signout", withSession(&session.Session{UserID: "user-1", TokenID: "tok-1"}, handler.SignOut))

	mockUseCase.On("SignOut", "tok-1").Return(nil).Once()
	mockUseCase.On("SignOut", "tok-1").Return(errors.New("failed to sign out"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signout", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/signout", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSignOut_NoSession(t *testing.T) {
	handler := newTestHandler(new(MockAuthUseCase))

	router := setupTestRouter()
	router.POST("/signout", handler.SignOut)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
