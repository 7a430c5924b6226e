package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"

	"gorm.io/gorm"
)

const (
	MinScore = 1
	MaxScore = 5
)

type ReviewService interface {
	// SubmitReview creates or overwrites the caller's review of a manuscript.
	SubmitReview(ctx context.Context, actor Actor, manuscriptID int64, text string, score int) (*models.Review, error)
	GetOwnReview(ctx context.Context, actor Actor, manuscriptID int64) (*models.Manuscript, *models.Review, error)
	ListReviews(ctx context.Context, actor Actor, manuscriptID int64) ([]models.Review, error)
	AssignReviewer(ctx context.Context, actor Actor, manuscriptID, reviewerID int64) (*models.Review, error)
}

type reviewService struct {
	reviews     repository.ReviewRepository
	manuscripts repository.ManuscriptRepository
	users       repository.UserRepository
	log         *slog.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	manuscripts repository.ManuscriptRepository,
	users repository.UserRepository,
	log *slog.Logger,
) ReviewService {
	return &reviewService{
		reviews:     reviews,
		manuscripts: manuscripts,
		users:       users,
		log:         log,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, actor Actor, manuscriptID int64, text string, score int) (*models.Review, error) {
	if !actor.Is(models.RoleReviewer) {
		return nil, ErrForbidden
	}

	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return nil, invalid("text", "is required")
	case !maxLen(text, 4000):
		return nil, invalid("text", "must be at most 4000 characters")
	case score < MinScore || score > MaxScore:
		return nil, invalid("score", fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
	}

	if _, err := s.manuscripts.GetByID(ctx, manuscriptID); err != nil {
		return nil, notFound(err)
	}

	review, _, err := s.reviews.SaveWithHistory(ctx, &models.Review{
		ManuscriptID: manuscriptID,
		ReviewerID:   actor.UserID,
		Text:         text,
		Score:        &score,
		Status:       models.ReviewSubmitted,
	}, true, actor.historyEntry(models.ActionReviewSubmitted, ""))
	if err != nil {
		return nil, err
	}

	s.log.Info("review_submitted",
		"manuscript_id", manuscriptID,
		"reviewer_id", actor.UserID,
		"score", score,
	)
	return review, nil
}

func (s *reviewService) GetOwnReview(ctx context.Context, actor Actor, manuscriptID int64) (*models.Manuscript, *models.Review, error) {
	if !actor.Is(models.RoleReviewer) {
		return nil, nil, ErrForbidden
	}

	m, err := s.manuscripts.GetByID(ctx, manuscriptID)
	if err != nil {
		return nil, nil, notFound(err)
	}

	review, err := s.reviews.FindByPair(ctx, manuscriptID, actor.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return m, review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, actor Actor, manuscriptID int64) ([]models.Review, error) {
	if !actor.Is(models.RoleStaff) {
		return nil, ErrForbidden
	}
	if _, err := s.manuscripts.GetByID(ctx, manuscriptID); err != nil {
		return nil, notFound(err)
	}
	return s.reviews.ListByManuscript(ctx, manuscriptID)
}

// AssignReviewer opens a pending review for the pair. Assigning twice returns the existing review.
func (s *reviewService) AssignReviewer(ctx context.Context, actor Actor, manuscriptID, reviewerID int64) (*models.Review, error) {
	if !actor.Is(models.RoleStaff) {
		return nil, ErrForbidden
	}

	if _, err := s.manuscripts.GetByID(ctx, manuscriptID); err != nil {
		return nil, notFound(err)
	}
	reviewer, err := s.users.FindByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("reviewer_id", "unknown user")
		}
		return nil, err
	}
	if reviewer.Role != models.RoleReviewer {
		return nil, invalid("reviewer_id", "user is not a reviewer")
	}

	entry := actor.historyEntry(models.ActionReviewerAssigned, fmt.Sprintf("Assigned reviewer %s", reviewer.FullName))
	review, created, err := s.reviews.SaveWithHistory(ctx, &models.Review{
		ManuscriptID: manuscriptID,
		ReviewerID:   reviewerID,
		Status:       models.ReviewPending,
	}, false, entry)
	if err != nil {
		return nil, err
	}

	if created {
		s.log.Info("reviewer_assigned", "manuscript_id", manuscriptID, "reviewer_id", reviewerID, "actor_id", actor.UserID)
	}
	return review, nil
}
