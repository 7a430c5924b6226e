package repository

import (
	"context"
	"errors"
	"fmt"

	"editorial/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// SaveWithHistory writes review for its (manuscript, reviewer) pair and
	// appends entry in the same transaction. When the pair already has a row,
	// overwrite copies text, score and status onto it; without overwrite the
	// stored row is returned untouched and no entry is written. The bool
	// reports whether anything was written.
	SaveWithHistory(ctx context.Context, review *models.Review, overwrite bool, entry models.ManuscriptHistory) (*models.Review, bool, error)
	FindByPair(ctx context.Context, manuscriptID, reviewerID int64) (*models.Review, error)
	ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.Review, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]models.Review, error)
	CountByStatus(ctx context.Context, status models.ReviewStatus) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) SaveWithHistory(
	ctx context.Context,
	review *models.Review,
	overwrite bool,
	entry models.ManuscriptHistory,
) (*models.Review, bool, error) {
	var saved models.Review
	written := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findPair(tx, review.ManuscriptID, review.ReviewerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing == nil {
			fresh := *review
			fresh.ID = 0
			// savepoint, so a lost insert race leaves the outer transaction usable
			err := tx.Transaction(func(sp *gorm.DB) error {
				return sp.Create(&fresh).Error
			})
			switch {
			case err == nil:
				saved = fresh
			case errors.Is(err, gorm.ErrDuplicatedKey):
				if existing, err = findPair(tx, review.ManuscriptID, review.ReviewerID); err != nil {
					return err
				}
			default:
				return fmt.Errorf("create review: %w", err)
			}
		}

		if existing != nil {
			if !overwrite {
				saved = *existing
				return nil
			}
			existing.Text = review.Text
			existing.Score = review.Score
			existing.Status = review.Status
			err := tx.Model(&models.Review{ID: existing.ID}).
				Select("text", "score", "status").
				Updates(existing).Error
			if err != nil {
				return fmt.Errorf("update review: %w", err)
			}
			saved = *existing
		}

		entry.ID = 0
		entry.ManuscriptID = review.ManuscriptID
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		written = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &saved, written, nil
}

func (r *reviewRepository) FindByPair(ctx context.Context, manuscriptID, reviewerID int64) (*models.Review, error) {
	return findPair(r.db.WithContext(ctx), manuscriptID, reviewerID)
}

func findPair(db *gorm.DB, manuscriptID, reviewerID int64) (*models.Review, error) {
	var review models.Review
	err := db.Where("manuscript_id = ? AND reviewer_id = ?", manuscriptID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("manuscript_id = ?", manuscriptID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Manuscript").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountByStatus(ctx context.Context, status models.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
