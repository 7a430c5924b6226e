package repository

import (
	"context"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

type NewsRepository interface {
	Create(ctx context.Context, n *models.News) error
	Update(ctx context.Context, n *models.News) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.News, error)
	List(ctx context.Context, limit int) ([]models.News, error)
	Count(ctx context.Context) (int64, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, n *models.News) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *newsRepository) Update(ctx context.Context, n *models.News) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*models.News, error) {
	var n models.News
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *newsRepository) List(ctx context.Context, limit int) ([]models.News, error) {
	q := r.db.WithContext(ctx).Order("published_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.News
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *newsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.News{}).Count(&count).Error
	return count, err
}
