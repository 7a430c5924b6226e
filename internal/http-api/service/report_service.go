package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	ReportFilename  = "manuscripts_report.csv"
	reportTimestamp = "2006-01-02 15:04"
	missingAuthor   = "—"
)

type Stats struct {
	UsersTotal           int64 `json:"users_total"`
	UsersAuthors         int64 `json:"users_authors"`
	UsersStaff           int64 `json:"users_staff"`
	UsersReviewers       int64 `json:"users_reviewers"`
	UsersAdmins          int64 `json:"users_admins"`
	PublicationsTotal    int64 `json:"publications_total"`
	ManuscriptsTotal     int64 `json:"manuscripts_total"`
	PublishedManuscripts int64 `json:"published_manuscripts"`
	InReview             int64 `json:"in_review"`
	ContactsTotal        int64 `json:"contacts_total"`
	ContactsNew          int64 `json:"contacts_new"`
	ContactsDone         int64 `json:"contacts_done"`
}

type AdminDashboard struct {
	NewsTotal         int64                `json:"news_total"`
	PublicationsTotal int64                `json:"publications_total"`
	UsersTotal        int64                `json:"users_total"`
	ContactsNew       int64                `json:"contacts_new"`
	ContactsUnread    int64                `json:"contacts_unread"`
	LatestContacts    []models.Message     `json:"latest_contacts"`
	LatestNews        []models.News        `json:"latest_news"`
	LatestPubs        []models.Publication `json:"latest_publications"`
}

type ReportService interface {
	Stats(ctx context.Context, actor Actor) (*Stats, error)
	AdminDashboard(ctx context.Context, actor Actor) (*AdminDashboard, error)
	// ExportManuscriptsCSV writes every manuscript, newest first, as a BOM-prefixed CSV.
	ExportManuscriptsCSV(ctx context.Context, actor Actor, w io.Writer) error
}

type reportService struct {
	users        repository.UserRepository
	manuscripts  repository.ManuscriptRepository
	publications repository.PublicationRepository
	news         repository.NewsRepository
	messages     repository.MessageRepository
}

func NewReportService(
	users repository.UserRepository,
	manuscripts repository.ManuscriptRepository,
	publications repository.PublicationRepository,
	news repository.NewsRepository,
	messages repository.MessageRepository,
) ReportService {
	return &reportService{
		users:        users,
		manuscripts:  manuscripts,
		publications: publications,
		news:         news,
		messages:     messages,
	}
}

func (s *reportService) Stats(ctx context.Context, actor Actor) (*Stats, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{
		UsersAuthors:   byRole[models.RoleAuthor],
		UsersStaff:     byRole[models.RoleStaff],
		UsersReviewers: byRole[models.RoleReviewer],
		UsersAdmins:    byRole[models.RoleAdmin],
	}

	counters := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&st.UsersTotal, func() (int64, error) { return s.users.Count(ctx) }},
		{&st.PublicationsTotal, func() (int64, error) { return s.publications.Count(ctx) }},
		{&st.ManuscriptsTotal, func() (int64, error) { return s.manuscripts.Count(ctx) }},
		{&st.PublishedManuscripts, func() (int64, error) { return s.manuscripts.CountByStatus(ctx, models.StatusPublished) }},
		{&st.InReview, func() (int64, error) { return s.manuscripts.CountByStatus(ctx, models.StatusUnderReview) }},
		{&st.ContactsTotal, func() (int64, error) { return s.messages.Count(ctx) }},
		{&st.ContactsNew, func() (int64, error) { return s.messages.CountByStatus(ctx, models.MessageNew) }},
		{&st.ContactsDone, func() (int64, error) { return s.messages.CountByStatus(ctx, models.MessageDone) }},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return st, nil
}

func (s *reportService) AdminDashboard(ctx context.Context, actor Actor) (*AdminDashboard, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	var (
		d   AdminDashboard
		err error
	)
	if d.NewsTotal, err = s.news.Count(ctx); err != nil {
		return nil, err
	}
	if d.PublicationsTotal, err = s.publications.Count(ctx); err != nil {
		return nil, err
	}
	if d.UsersTotal, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if d.ContactsNew, err = s.messages.CountByStatus(ctx, models.MessageNew); err != nil {
		return nil, err
	}
	if d.ContactsUnread, err = s.messages.CountUnread(ctx); err != nil {
		return nil, err
	}
	if d.LatestContacts, err = s.messages.List(ctx, 5); err != nil {
		return nil, err
	}
	if d.LatestNews, err = s.news.List(ctx, 5); err != nil {
		return nil, err
	}
	if d.LatestPubs, err = s.publications.List(ctx, 5); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *reportService) ExportManuscriptsCSV(ctx context.Context, actor Actor, w io.Writer) error {
	if !actor.Is(models.RoleAdmin) {
		return ErrForbidden
	}

	list, err := s.manuscripts.List(ctx, 0)
	if err != nil {
		return err
	}
	return WriteManuscriptsCSV(w, list)
}

// WriteManuscriptsCSV writes the report rows in the given order.
func WriteManuscriptsCSV(w io.Writer, list []models.Manuscript) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)
	cw.Comma = ';'

	if err := cw.Write([]string{"ID", "Title", "Author", "Status", "Created"}); err != nil {
		return err
	}
	for _, m := range list {
		author := missingAuthor
		if m.Author != nil && m.Author.FullName != "" {
			author = m.Author.FullName
		}
		row := []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			author,
			string(m.Status),
			m.CreatedAt.Format(reportTimestamp),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return bw.Close()
}
