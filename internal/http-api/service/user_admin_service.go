package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
)

type UserAdminService interface {
	List(ctx context.Context, actor Actor, query, role string) ([]models.User, error)
	Get(ctx context.Context, actor Actor, id int64) (*models.User, error)
	ChangeRole(ctx context.Context, actor Actor, id int64, role string) (*models.User, error)
	SetBlocked(ctx context.Context, actor Actor, id int64, blocked bool) (*models.User, error)
}

type userAdminService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserAdminService(users repository.UserRepository, log *slog.Logger) UserAdminService {
	return &userAdminService{users: users, log: log}
}

func (s *userAdminService) List(ctx context.Context, actor Actor, query, role string) ([]models.User, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	filter := repository.UserFilter{Query: strings.TrimSpace(query)}
	if strings.TrimSpace(role) != "" {
		r, err := models.ParseRole(role)
		if err != nil {
			return nil, invalid("role", err.Error())
		}
		filter.Role = r
	}
	return s.users.List(ctx, filter)
}

func (s *userAdminService) Get(ctx context.Context, actor Actor, id int64) (*models.User, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (s *userAdminService) ChangeRole(ctx context.Context, actor Actor, id int64, role string) (*models.User, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	newRole, err := models.ParseRole(role)
	if err != nil {
		return nil, invalid("role", err.Error())
	}
	if id == actor.UserID {
		return nil, fmt.Errorf("%w: administrators cannot change their own role", ErrForbidden)
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if u.Role == newRole {
		return u, nil
	}
	if err := s.users.UpdateRole(ctx, id, newRole); err != nil {
		return nil, err
	}

	s.log.Info("user_role_changed", "user_id", id, "from", u.Role, "to", newRole, "actor_id", actor.UserID)
	u.Role = newRole
	return u, nil
}

func (s *userAdminService) SetBlocked(ctx context.Context, actor Actor, id int64, blocked bool) (*models.User, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if id == actor.UserID {
		return nil, fmt.Errorf("%w: administrators cannot block themselves", ErrForbidden)
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if u.IsBlocked != blocked {
		if err := s.users.SetBlocked(ctx, id, blocked); err != nil {
			return nil, err
		}
		s.log.Info("user_block_changed", "user_id", id, "blocked", blocked, "actor_id", actor.UserID)
	}
	u.IsBlocked = blocked
	return u, nil
}
