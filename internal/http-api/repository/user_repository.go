package repository

import (
	"context"
	"strings"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

// UserFilter narrows the admin user listing. Zero values mean "any".
type UserFilter struct {
	Query string
	Role  models.Role
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	// return nil on error so callers never see a zero-value user
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if term := strings.TrimSpace(filter.Query); term != "" {
		p := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", p, p)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	var users []models.User
	if err := q.Order("registered_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	return r.updateColumn(ctx, id, "role", role)
}

func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return r.updateColumn(ctx, id, "is_blocked", blocked)
}

func (r *userRepository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	var rows []struct {
		Role  models.Role
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Role]int64, len(models.Roles))
	for _, role := range models.Roles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}
