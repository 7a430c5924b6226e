package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
	"editorial/internal/storage"

	"gorm.io/gorm"
)

const publishComment = "Manuscript approved for publication by the editor."

// SubmitInput carries an author's new manuscript.
type SubmitInput struct {
	Title       string
	Description string
	FileName    string
	File        io.Reader
}

// PublishResult reports the manuscript after Publish. AlreadyPublished means
// nothing changed, either because it was published before or because a
// concurrent request published it first.
type PublishResult struct {
	Manuscript       *models.Manuscript
	AlreadyPublished bool
}

type WorkflowService interface {
	Submit(ctx context.Context, actor Actor, in SubmitInput) (*models.Manuscript, error)
	Publish(ctx context.Context, actor Actor, manuscriptID int64) (*PublishResult, error)
	StartReview(ctx context.Context, actor Actor, manuscriptID int64, comment string) (*models.Manuscript, error)
	Decide(ctx context.Context, actor Actor, manuscriptID int64, accept bool, comment string) (*models.Manuscript, error)
	ListForRole(ctx context.Context, actor Actor) ([]models.Manuscript, error)
	Get(ctx context.Context, actor Actor, manuscriptID int64) (*models.Manuscript, error)
	History(ctx context.Context, actor Actor, manuscriptID int64) ([]models.ManuscriptHistory, error)
}

type workflowService struct {
	manuscripts repository.ManuscriptRepository
	reviews     repository.ReviewRepository
	history     repository.HistoryRepository
	files       FileStore
	notifier    Notifier
	log         *slog.Logger
}

func NewWorkflowService(
	manuscripts repository.ManuscriptRepository,
	reviews repository.ReviewRepository,
	history repository.HistoryRepository,
	files FileStore,
	notifier Notifier,
	log *slog.Logger,
) WorkflowService {
	return &workflowService{
		manuscripts: manuscripts,
		reviews:     reviews,
		history:     history,
		files:       files,
		notifier:    notifier,
		log:         log,
	}
}

func (s *workflowService) Submit(ctx context.Context, actor Actor, in SubmitInput) (*models.Manuscript, error) {
	if !actor.Is(models.RoleAuthor) {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	switch {
	case title == "":
		return nil, invalid("title", "is required")
	case !maxLen(title, 256):
		return nil, invalid("title", "must be at most 256 characters")
	case !maxLen(description, 2000):
		return nil, invalid("description", "must be at most 2000 characters")
	case in.File == nil || strings.TrimSpace(in.FileName) == "":
		return nil, invalid("file", "is required")
	}

	rel, err := s.files.Save(storage.DirManuscripts, in.FileName, in.File)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			return nil, invalid("file", "allowed formats: pdf, doc, docx, rtf, txt")
		case errors.Is(err, storage.ErrTooLarge):
			return nil, invalid("file", "is too large")
		case errors.Is(err, storage.ErrEmptyFile):
			return nil, invalid("file", "is empty")
		}
		return nil, fmt.Errorf("store manuscript file: %w", err)
	}

	m := &models.Manuscript{
		Title:       title,
		Description: description,
		FilePath:    rel,
		Status:      models.StatusSubmitted,
		AuthorID:    actor.UserID,
	}
	if err := s.manuscripts.Create(ctx, m); err != nil {
		if rmErr := s.files.Remove(rel); rmErr != nil {
			s.log.Warn("orphan_file_cleanup_failed", "path", rel, "error", rmErr)
		}
		return nil, err
	}

	s.log.Info("manuscript_submitted", "manuscript_id", m.ID, "author_id", actor.UserID)
	return m, nil
}

func (s *workflowService) Publish(ctx context.Context, actor Actor, manuscriptID int64) (*PublishResult, error) {
	if !actor.Is(models.RoleStaff) {
		return nil, ErrForbidden
	}

	current, err := s.manuscripts.GetByID(ctx, manuscriptID)
	if err != nil {
		return nil, notFound(err)
	}
	if current.Status == models.StatusPublished {
		return &PublishResult{Manuscript: current, AlreadyPublished: true}, nil
	}

	updated, err := s.manuscripts.ApplyTransition(ctx, repository.Transition{
		ManuscriptID:            manuscriptID,
		To:                      models.StatusPublished,
		AttachLatestPublication: true,
		Entry:                   actor.historyEntry(models.ActionPublished, publishComment),
	})
	if errors.Is(err, repository.ErrStaleStatus) {
		// another publisher won the race
		latest, getErr := s.manuscripts.GetByID(ctx, manuscriptID)
		if getErr != nil {
			return nil, notFound(getErr)
		}
		return &PublishResult{Manuscript: latest, AlreadyPublished: true}, nil
	}
	if err != nil {
		return nil, notFound(err)
	}

	s.log.Info("manuscript_published",
		"manuscript_id", updated.ID,
		"publication_id", updated.PublicationID,
		"actor_id", actor.UserID,
	)

	if updated.Author != nil {
		pubTitle := ""
		if updated.Publication != nil {
			pubTitle = updated.Publication.Title
		}
		s.notifier.ManuscriptPublished(updated.Author.Email, updated.Author.FullName, updated.Title, pubTitle)
	}

	return &PublishResult{Manuscript: updated}, nil
}

func (s *workflowService) StartReview(ctx context.Context, actor Actor, manuscriptID int64, comment string) (*models.Manuscript, error) {
	return s.transition(ctx, actor, manuscriptID, models.StatusSubmitted, models.StatusUnderReview,
		models.ActionUnderReview, comment)
}

func (s *workflowService) Decide(ctx context.Context, actor Actor, manuscriptID int64, accept bool, comment string) (*models.Manuscript, error) {
	to, action := models.StatusRejected, models.ActionRejected
	if accept {
		to, action = models.StatusAccepted, models.ActionAccepted
	}
	return s.transition(ctx, actor, manuscriptID, models.StatusUnderReview, to, action, comment)
}

func (s *workflowService) transition(
	ctx context.Context,
	actor Actor,
	manuscriptID int64,
	from, to models.ManuscriptStatus,
	action, comment string,
) (*models.Manuscript, error) {
	if !actor.Is(models.RoleStaff) {
		return nil, ErrForbidden
	}
	comment = strings.TrimSpace(comment)
	if !maxLen(comment, 2000) {
		return nil, invalid("comment", "must be at most 2000 characters")
	}

	updated, err := s.manuscripts.ApplyTransition(ctx, repository.Transition{
		ManuscriptID: manuscriptID,
		From:         []models.ManuscriptStatus{from},
		To:           to,
		Entry:        actor.historyEntry(action, comment),
	})
	if errors.Is(err, repository.ErrStaleStatus) {
		return nil, fmt.Errorf("%w: manuscript is not %s", ErrInvalidTransition, from)
	}
	if err != nil {
		return nil, notFound(err)
	}

	s.log.Info("manuscript_status_changed",
		"manuscript_id", manuscriptID,
		"from", from,
		"to", to,
		"actor_id", actor.UserID,
	)
	return updated, nil
}

func (s *workflowService) ListForRole(ctx context.Context, actor Actor) ([]models.Manuscript, error) {
	switch actor.Role {
	case models.RoleStaff:
		return s.manuscripts.List(ctx, 0)
	case models.RoleReviewer:
		return s.manuscripts.ListReviewedBy(ctx, actor.UserID)
	case models.RoleAuthor:
		return s.manuscripts.ListByAuthor(ctx, actor.UserID)
	case models.RoleAdmin:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}
}

func (s *workflowService) Get(ctx context.Context, actor Actor, manuscriptID int64) (*models.Manuscript, error) {
	m, err := s.manuscripts.GetByID(ctx, manuscriptID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.checkVisible(ctx, actor, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *workflowService) History(ctx context.Context, actor Actor, manuscriptID int64) ([]models.ManuscriptHistory, error) {
	if _, err := s.Get(ctx, actor, manuscriptID); err != nil {
		return nil, err
	}
	return s.history.ListByManuscript(ctx, manuscriptID)
}

// checkVisible applies the per-role read rules for a single manuscript.
func (s *workflowService) checkVisible(ctx context.Context, actor Actor, m *models.Manuscript) error {
	switch actor.Role {
	case models.RoleStaff, models.RoleAdmin:
		return nil
	case models.RoleAuthor:
		if m.AuthorID == actor.UserID {
			return nil
		}
		return ErrForbidden
	case models.RoleReviewer:
		_, err := s.reviews.FindByPair(ctx, m.ID, actor.UserID)
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	default:
		return ErrForbidden
	}
}
