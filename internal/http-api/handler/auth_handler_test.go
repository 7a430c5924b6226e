package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/handler"
	"editorial/internal/http-api/middleware"
	"editorial/internal/http-api/models"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authRouter(authService *MockAuthService) *gin.Engine {
	r := setupRouter()
	h := handler.NewAuthHandler(authService, false)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", middleware.AuthMiddleware(authService), h.Logout)
	return r
}

func jsonRequest(method, url string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister_Success(t *testing.T) {
	authService := new(MockAuthService)
	router := authRouter(authService)

	user := &models.User{ID: 1, FullName: "Ann Author", Email: "ann@example.com", Role: models.RoleAuthor, PasswordHash: "secret-hash"}
	authService.On("Register", mock.Anything, "Ann Author", "ann@example.com", "pass123").Return(user, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/register", dto.RegisterRequest{
		FullName: "Ann Author", Email: "ann@example.com", Password: "pass123",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"author"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
	authService.AssertExpectations(t)
}

func TestRegister_FormEncoded(t *testing.T) {
	authService := new(MockAuthService)
	router := authRouter(authService)

	authService.On("Register", mock.Anything, "Ann", "ann@example.com", "pass123").
		Return(&models.User{ID: 1, Role: models.RoleAuthor}, nil)

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader("full_name=Ann&email=ann@example.com&password=pass123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"email taken", service.ErrEmailInUse, http.StatusConflict, "email"},
		{"short password", &service.ValidationError{Field: "password", Message: "password must be at least 6 characters"}, http.StatusBadRequest, `"field":"password"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			router := authRouter(authService)
			authService.On("Register", mock.Anything, "Ann", "ann@example.com", "x").Return(nil, tt.err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(http.MethodPost, "/register", dto.RegisterRequest{
				FullName: "Ann", Email: "ann@example.com", Password: "x",
			}))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRegister_MissingFields(t *testing.T) {
	authService := new(MockAuthService)
	router := authRouter(authService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/register", map[string]string{"email": "a@b.c"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	authService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	authService := new(MockAuthService)
	router := authRouter(authService)

	sess := &service.Session{
		Token:     "jwt-token",
		ID:        "sess-1",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      &models.User{ID: 1, Email: "ann@example.com", Role: models.RoleAuthor},
	}
	authService.On("Login", mock.Anything, "ann@example.com", "pass123").Return(sess, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", dto.LoginRequest{Email: "ann@example.com", Password: "pass123"}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.SessionCookie+"=jwt-token")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"blocked", service.ErrUserBlocked, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			router := authRouter(authService)
			authService.On("Login", mock.Anything, "ann@example.com", "nope").Return(nil, tt.err)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", dto.LoginRequest{Email: "ann@example.com", Password: "nope"}))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Empty(t, w.Header().Get("Set-Cookie"))
		})
	}
}

func TestLogout_RevokesSessionAndClearsCookie(t *testing.T) {
	authService := new(MockAuthService)
	router := authRouter(authService)
	authenticatedAs(authService, authorActor)
	authService.On("Logout", mock.Anything, "sess-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
	authService.AssertExpectations(t)
}
