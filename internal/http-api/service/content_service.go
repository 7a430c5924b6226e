package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
)

// PubDateLayout is the accepted format for publication dates.
const PubDateLayout = "2006-01-02"

type NewsInput struct {
	Title   string
	Content string
}

type PublicationInput struct {
	Type        string
	Title       string
	PubDate     string
	Description string
}

type HomePage struct {
	News         []models.News        `json:"news"`
	Publications []models.Publication `json:"publications"`
}

type PublicationDetail struct {
	Publication *models.Publication `json:"publication"`
	Manuscripts []models.Manuscript `json:"manuscripts"`
}

// ContentService serves the public news and publications pages and their admin editing.
type ContentService interface {
	Home(ctx context.Context) (*HomePage, error)
	ListNews(ctx context.Context) ([]models.News, error)
	GetNews(ctx context.Context, id int64) (*models.News, error)
	ListPublications(ctx context.Context) ([]models.Publication, error)
	GetPublication(ctx context.Context, id int64) (*PublicationDetail, error)

	CreateNews(ctx context.Context, actor Actor, in NewsInput) (*models.News, error)
	UpdateNews(ctx context.Context, actor Actor, id int64, in NewsInput) (*models.News, error)
	DeleteNews(ctx context.Context, actor Actor, id int64) error
	CreatePublication(ctx context.Context, actor Actor, in PublicationInput) (*models.Publication, error)
	UpdatePublication(ctx context.Context, actor Actor, id int64, in PublicationInput) (*models.Publication, error)
	DeletePublication(ctx context.Context, actor Actor, id int64) error
}

type contentService struct {
	news         repository.NewsRepository
	publications repository.PublicationRepository
	manuscripts  repository.ManuscriptRepository
	log          *slog.Logger
	now          func() time.Time
}

func NewContentService(
	news repository.NewsRepository,
	publications repository.PublicationRepository,
	manuscripts repository.ManuscriptRepository,
	log *slog.Logger,
) ContentService {
	return &contentService{
		news:         news,
		publications: publications,
		manuscripts:  manuscripts,
		log:          log,
		now:          time.Now,
	}
}

func (s *contentService) Home(ctx context.Context) (*HomePage, error) {
	news, err := s.news.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	pubs, err := s.publications.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &HomePage{News: news, Publications: pubs}, nil
}

func (s *contentService) ListNews(ctx context.Context) ([]models.News, error) {
	return s.news.List(ctx, 0)
}

func (s *contentService) GetNews(ctx context.Context, id int64) (*models.News, error) {
	n, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

func (s *contentService) ListPublications(ctx context.Context) ([]models.Publication, error) {
	return s.publications.List(ctx, 0)
}

// GetPublication returns the publication with only its published manuscripts.
func (s *contentService) GetPublication(ctx context.Context, id int64) (*PublicationDetail, error) {
	p, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	list, err := s.manuscripts.ListPublishedIn(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PublicationDetail{Publication: p, Manuscripts: list}, nil
}

func (s *contentService) CreateNews(ctx context.Context, actor Actor, in NewsInput) (*models.News, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := validateNews(&in); err != nil {
		return nil, err
	}

	n := &models.News{Title: in.Title, Content: in.Content, PublishedAt: s.now().UTC()}
	if err := s.news.Create(ctx, n); err != nil {
		return nil, err
	}
	s.log.Info("news_created", "news_id", n.ID, "actor_id", actor.UserID)
	return n, nil
}

// UpdateNews keeps the original publication time.
func (s *contentService) UpdateNews(ctx context.Context, actor Actor, id int64, in NewsInput) (*models.News, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := validateNews(&in); err != nil {
		return nil, err
	}

	n, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	n.Title = in.Title
	n.Content = in.Content
	if n.PublishedAt.IsZero() {
		n.PublishedAt = s.now().UTC()
	}
	if err := s.news.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *contentService) DeleteNews(ctx context.Context, actor Actor, id int64) error {
	if !actor.Is(models.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.news.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("news_deleted", "news_id", id, "actor_id", actor.UserID)
	return nil
}

func (s *contentService) CreatePublication(ctx context.Context, actor Actor, in PublicationInput) (*models.Publication, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := validatePublication(&in); err != nil {
		return nil, err
	}

	p := &models.Publication{}
	applyPublication(p, in)
	if err := s.publications.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("publication_created", "publication_id", p.ID, "actor_id", actor.UserID)
	return p, nil
}

func (s *contentService) UpdatePublication(ctx context.Context, actor Actor, id int64, in PublicationInput) (*models.Publication, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if err := validatePublication(&in); err != nil {
		return nil, err
	}

	p, err := s.publications.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	applyPublication(p, in)
	if err := s.publications.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *contentService) DeletePublication(ctx context.Context, actor Actor, id int64) error {
	if !actor.Is(models.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.publications.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("publication_deleted", "publication_id", id, "actor_id", actor.UserID)
	return nil
}

func validateNews(in *NewsInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	switch {
	case in.Title == "":
		return invalid("title", "is required")
	case !maxLen(in.Title, 256):
		return invalid("title", "must be at most 256 characters")
	case in.Content == "":
		return invalid("content", "is required")
	}
	return nil
}

func validatePublication(in *PublicationInput) error {
	in.Type = strings.TrimSpace(in.Type)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.Title == "":
		return invalid("title", "is required")
	case !maxLen(in.Title, 256):
		return invalid("title", "must be at most 256 characters")
	case in.Type == "":
		return invalid("type", "is required")
	case !maxLen(in.Type, 64):
		return invalid("type", "must be at most 64 characters")
	}
	return nil
}

// applyPublication copies input onto p. An unparsable date is stored as null.
func applyPublication(p *models.Publication, in PublicationInput) {
	p.Type = in.Type
	p.Title = in.Title
	p.Description = in.Description
	p.PubDate = ParsePubDate(in.PubDate)
}

// ParsePubDate parses YYYY-MM-DD, returning nil for empty or malformed input.
func ParsePubDate(s string) *time.Time {
	d, err := time.Parse(PubDateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}
