package repository

import (
	"context"
	"errors"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

type PublicationRepository interface {
	Create(ctx context.Context, p *models.Publication) error
	Update(ctx context.Context, p *models.Publication) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	List(ctx context.Context, limit int) ([]models.Publication, error)
	Count(ctx context.Context) (int64, error)
}

type publicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(ctx context.Context, p *models.Publication) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *publicationRepository) Update(ctx context.Context, p *models.Publication) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete detaches the publication's manuscripts before removing it.
func (r *publicationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Manuscript{}).
			Where("publication_id = ?", id).
			Update("publication_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Publication{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *publicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	var p models.Publication
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List orders by pub_date descending with undated publications last.
func (r *publicationRepository) List(ctx context.Context, limit int) ([]models.Publication, error) {
	q := r.db.WithContext(ctx).Order("pub_date IS NULL, pub_date DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Publication
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *publicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Publication{}).Count(&count).Error
	return count, err
}

// latestPublicationID picks the publication with the greatest pub_date (lowest id on ties).
// When no publication is dated it falls back to the lowest id; nil means there are none.
func latestPublicationID(db *gorm.DB) (*int64, error) {
	var p models.Publication
	err := db.Select("id").
		Where("pub_date IS NOT NULL").
		Order("pub_date DESC, id ASC").
		Take(&p).Error
	if err == nil {
		return &p.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Select("id").Order("id ASC").Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p.ID, nil
}
