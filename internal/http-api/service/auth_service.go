package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"editorial/internal/config"
	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
	"editorial/internal/middleware/auth"
	"editorial/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims is the payload of a session token. The registered ID claim (jti)
// is the session id kept in the session store.
type Claims struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate verifies a token and returns its claims with the user's current role.
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   session.Store
	jwtSecret  []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store, cfg *config.Config) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an author account. Other roles are granted by an administrator.
func (s *authService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = NormalizeEmail(email)

	switch {
	case fullName == "":
		return nil, invalid("full_name", "is required")
	case !maxLen(fullName, 128):
		return nil, invalid("full_name", "must be at most 128 characters")
	case !validEmail(email):
		return nil, invalid("email", "must be a valid address")
	case len(password) < auth.MinPasswordLength:
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAuthor,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can still hit the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// same cost as a wrong password so unknown emails are not observable
		auth.BurnCompare(password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	sessionID := uuid.NewString()
	now := s.now()
	expires := now.Add(s.sessionTTL)

	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Save(ctx, sessionID, user.ID, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &Session{Token: token, ID: sessionID, ExpiresAt: expires, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !live {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	// role changes by an admin apply to existing sessions
	claims.Role = user.Role
	return claims, nil
}
