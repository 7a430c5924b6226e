package repository

import (
	"context"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

// HistoryRepository reads the audit log. Entries are written only inside the
// transactions that change a manuscript or its reviews.
type HistoryRepository interface {
	ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.ManuscriptHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.ManuscriptHistory, error) {
	var entries []models.ManuscriptHistory
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("manuscript_id = ?", manuscriptID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
