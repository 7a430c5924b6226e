package service

import (
	"context"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
)

const staffDashboardLimit = 20

// Dashboard is the personal page. Only the part for the caller's role is filled.
type Dashboard struct {
	User        *models.User        `json:"user"`
	Manuscripts []models.Manuscript `json:"manuscripts,omitempty"`
	Reviews     []models.Review     `json:"reviews,omitempty"`
	Counters    map[string]int64    `json:"counters,omitempty"`
}

type DashboardService interface {
	Dashboard(ctx context.Context, actor Actor) (*Dashboard, error)
}

type dashboardService struct {
	users        repository.UserRepository
	manuscripts  repository.ManuscriptRepository
	reviews      repository.ReviewRepository
	publications repository.PublicationRepository
	news         repository.NewsRepository
}

func NewDashboardService(
	users repository.UserRepository,
	manuscripts repository.ManuscriptRepository,
	reviews repository.ReviewRepository,
	publications repository.PublicationRepository,
	news repository.NewsRepository,
) DashboardService {
	return &dashboardService{
		users:        users,
		manuscripts:  manuscripts,
		reviews:      reviews,
		publications: publications,
		news:         news,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, actor Actor) (*Dashboard, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	d := &Dashboard{User: user}

	switch actor.Role {
	case models.RoleAuthor:
		d.Manuscripts, err = s.manuscripts.ListByAuthor(ctx, actor.UserID)
	case models.RoleReviewer:
		d.Reviews, err = s.reviews.ListByReviewer(ctx, actor.UserID)
	case models.RoleStaff:
		d.Manuscripts, err = s.manuscripts.List(ctx, staffDashboardLimit)
	case models.RoleAdmin:
		d.Counters, err = s.adminCounters(ctx)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *dashboardService) adminCounters(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 4)
	var err error
	if counts["users_total"], err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if counts["manuscripts_total"], err = s.manuscripts.Count(ctx); err != nil {
		return nil, err
	}
	if counts["publications_total"], err = s.publications.Count(ctx); err != nil {
		return nil, err
	}
	if counts["news_total"], err = s.news.Count(ctx); err != nil {
		return nil, err
	}
	return counts, nil
}
