package service

import (
	"errors"
	"fmt"

	"editorial/internal/http-api/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserBlocked            = errors.New("account is blocked")
	ErrEmailInUse             = errors.New("email already in use")
	ErrInvalidToken           = errors.New("invalid token")
	ErrInvalidTransition      = errors.New("invalid status transition")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Actor is the authenticated caller, passed explicitly into every operation.
type Actor struct {
	UserID int64
	Role   models.Role
}

// Is reports whether the actor has one of the given roles.
func (a Actor) Is(roles ...models.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func (a Actor) historyEntry(action, comment string) models.ManuscriptHistory {
	id := a.UserID
	return models.ManuscriptHistory{
		ActorID:   &id,
		ActorRole: a.Role,
		Action:    action,
		Comment:   comment,
	}
}

// notFound maps gorm's missing-row error to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var validate = validator.New()

// validEmail checks the address format with the same rules gin uses for binding.
func validEmail(email string) bool {
	return validate.Var(email, "required,email,max=128") == nil
}

// maxLen counts runes, not bytes.
func maxLen(s string, n int) bool {
	return len([]rune(s)) <= n
}
