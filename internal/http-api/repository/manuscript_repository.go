package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

// ErrStaleStatus is returned when a status compare-and-swap matched no row,
// meaning another request changed the manuscript first.
var ErrStaleStatus = errors.New("manuscript status changed concurrently")

// Transition describes one atomic status change together with its audit entry.
type Transition struct {
	ManuscriptID int64
	// From lists the states the manuscript may be in. Empty means any state other than To.
	From []models.ManuscriptStatus
	To   models.ManuscriptStatus
	// AttachLatestPublication links an unattached manuscript to the most recent publication.
	AttachLatestPublication bool
	Entry                   models.ManuscriptHistory
}

type ManuscriptRepository interface {
	Create(ctx context.Context, m *models.Manuscript) error
	GetByID(ctx context.Context, id int64) (*models.Manuscript, error)
	List(ctx context.Context, limit int) ([]models.Manuscript, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Manuscript, error)
	ListReviewedBy(ctx context.Context, reviewerID int64) ([]models.Manuscript, error)
	ListPublishedIn(ctx context.Context, publicationID int64) ([]models.Manuscript, error)
	ApplyTransition(ctx context.Context, t Transition) (*models.Manuscript, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.ManuscriptStatus) (int64, error)
}

type manuscriptRepository struct {
	db *gorm.DB
}

func NewManuscriptRepository(db *gorm.DB) ManuscriptRepository {
	return &manuscriptRepository{db: db}
}

func (r *manuscriptRepository) Create(ctx context.Context, m *models.Manuscript) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create manuscript: %w", err)
	}
	return nil
}

func (r *manuscriptRepository) GetByID(ctx context.Context, id int64) (*models.Manuscript, error) {
	var m models.Manuscript
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Publication").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns manuscripts newest first; limit <= 0 means no limit.
func (r *manuscriptRepository) List(ctx context.Context, limit int) ([]models.Manuscript, error) {
	q := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Manuscript
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *manuscriptRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Manuscript, error) {
	var list []models.Manuscript
	err := r.db.WithContext(ctx).
		Preload("Publication").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListReviewedBy returns every manuscript the reviewer has a review row for, whatever its status.
func (r *manuscriptRepository) ListReviewedBy(ctx context.Context, reviewerID int64) ([]models.Manuscript, error) {
	var list []models.Manuscript
	db := r.db.WithContext(ctx)
	sub := db.Model(&models.Review{}).Select("manuscript_id").Where("reviewer_id = ?", reviewerID)
	err := db.
		Preload("Author").
		Where("id IN (?)", sub).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *manuscriptRepository) ListPublishedIn(ctx context.Context, publicationID int64) ([]models.Manuscript, error) {
	var list []models.Manuscript
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("publication_id = ? AND status = ?", publicationID, models.StatusPublished).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ApplyTransition performs the status compare-and-swap and the history insert in one transaction.
func (r *manuscriptRepository) ApplyTransition(ctx context.Context, t Transition) (*models.Manuscript, error) {
	var updated models.Manuscript
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Manuscript
		if err := tx.Select("id", "status", "publication_id").First(&current, t.ManuscriptID).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"status":     t.To,
			"updated_at": time.Now().UTC(),
		}
		if t.AttachLatestPublication && current.PublicationID == nil {
			pubID, err := latestPublicationID(tx)
			if err != nil {
				return fmt.Errorf("pick publication: %w", err)
			}
			if pubID != nil {
				// keep a publication attached by a concurrent writer
				updates["publication_id"] = gorm.Expr("COALESCE(publication_id, ?)", *pubID)
			}
		}

		q := tx.Model(&models.Manuscript{}).Where("id = ?", t.ManuscriptID)
		if len(t.From) > 0 {
			q = q.Where("status IN ?", t.From)
		} else {
			q = q.Where("status <> ?", t.To)
		}
		result := q.Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("update status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}

		entry := t.Entry
		entry.ID = 0
		entry.ManuscriptID = t.ManuscriptID
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		return tx.Preload("Author").Preload("Publication").First(&updated, t.ManuscriptID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *manuscriptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Manuscript{}).Count(&count).Error
	return count, err
}

func (r *manuscriptRepository) CountByStatus(ctx context.Context, status models.ManuscriptStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Manuscript{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
