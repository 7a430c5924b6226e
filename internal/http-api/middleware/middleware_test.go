package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	args := m.Called(ctx, fullName, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*service.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func staffClaims() *service.Claims {
	return &service.Claims{
		UserID:           20,
		Role:             models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{ID: "sess-1"},
	}
}

func echoActor(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role, "session": SessionID(c)})
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	authService := new(MockAuthService)
	router := setupRouter()
	router.GET("/private", AuthMiddleware(authService), echoActor)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	authService.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	authService := new(MockAuthService)
	router := setupRouter()
	router.GET("/private", AuthMiddleware(authService), echoActor)
	authService.On("Authenticate", mock.Anything, "tok").Return(staffClaims(), nil)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":20,"role":"staff","session":"sess-1"}`, w.Body.String())
}

func TestAuthMiddleware_CookieWins(t *testing.T) {
	authService := new(MockAuthService)
	router := setupRouter()
	router.GET("/private", AuthMiddleware(authService), echoActor)
	authService.On("Authenticate", mock.Anything, "cookie-tok").Return(staffClaims(), nil)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-tok"})
	req.Header.Set("Authorization", "Bearer header-tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	authService.AssertExpectations(t)
}

func TestAuthMiddleware_Errors(t *testing.T) {
	cases := map[error]int{
		service.ErrInvalidToken:  http.StatusUnauthorized,
		service.ErrUserBlocked:   http.StatusForbidden,
		errors.New("redis down"): http.StatusInternalServerError,
	}
	for authErr, code := range cases {
		authService := new(MockAuthService)
		router := setupRouter()
		router.GET("/private", AuthMiddleware(authService), echoActor)
		authService.On("Authenticate", mock.Anything, "tok").Return(nil, authErr)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, code, w.Code, authErr.Error())
	}
}

func TestOptionalAuth_AnonymousAndInvalid(t *testing.T) {
	authService := new(MockAuthService)
	router := setupRouter()
	router.GET("/contact", OptionalAuth(authService), echoActor)
	authService.On("Authenticate", mock.Anything, "bad").Return(nil, service.ErrInvalidToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	authService := new(MockAuthService)
	router := setupRouter()
	router.GET("/staff", AuthMiddleware(authService), RequireRole(models.RoleStaff), echoActor)
	router.GET("/admin", AuthMiddleware(authService), RequireRole(models.RoleAdmin), echoActor)
	authService.On("Authenticate", mock.Anything, "tok").Return(staffClaims(), nil)

	for path, code := range map[string]int{"/staff": http.StatusOK, "/admin": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, code, w.Code, path)
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("1.1.1.1"))
	assert.False(t, limiter.Allow("1.1.1.1"))
	assert.True(t, limiter.Allow("2.2.2.2"), "buckets are per IP")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("1.1.1.1"))
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	router := setupRouter()
	router.POST("/login", NewIPRateLimiter(0.001, 1).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestSecurityHeaders(t *testing.T) {
	router := setupRouter()
	router.Use(SecurityHeaders())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
