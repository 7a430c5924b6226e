package service

import (
	"context"
	"io"
	"log/slog"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Role]int64), args.Error(1)
}

// MockManuscriptRepository mocks the ManuscriptRepository interface
type MockManuscriptRepository struct {
	mock.Mock
}

func (m *MockManuscriptRepository) Create(ctx context.Context, ms *models.Manuscript) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MockManuscriptRepository) GetByID(ctx context.Context, id int64) (*models.Manuscript, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) List(ctx context.Context, limit int) ([]models.Manuscript, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.Manuscript, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) ListReviewedBy(ctx context.Context, reviewerID int64) ([]models.Manuscript, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) ListPublishedIn(ctx context.Context, publicationID int64) ([]models.Manuscript, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) ApplyTransition(ctx context.Context, t repository.Transition) (*models.Manuscript, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockManuscriptRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManuscriptRepository) CountByStatus(ctx context.Context, status models.ManuscriptStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) SaveWithHistory(ctx context.Context, review *models.Review, overwrite bool, entry models.ManuscriptHistory) (*models.Review, bool, error) {
	args := m.Called(ctx, review, overwrite, entry)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Review), args.Bool(1), args.Error(2)
}

func (m *MockReviewRepository) FindByPair(ctx context.Context, manuscriptID, reviewerID int64) (*models.Review, error) {
	args := m.Called(ctx, manuscriptID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.Review, error) {
	args := m.Called(ctx, manuscriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]models.Review, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByStatus(ctx context.Context, status models.ReviewStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository mocks the HistoryRepository interface
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) ListByManuscript(ctx context.Context, manuscriptID int64) ([]models.ManuscriptHistory, error) {
	args := m.Called(ctx, manuscriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ManuscriptHistory), args.Error(1)
}

// MockPublicationRepository mocks the PublicationRepository interface
type MockPublicationRepository struct {
	mock.Mock
}

func (m *MockPublicationRepository) Create(ctx context.Context, p *models.Publication) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPublicationRepository) Update(ctx context.Context, p *models.Publication) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPublicationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

func (m *MockPublicationRepository) List(ctx context.Context, limit int) ([]models.Publication, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Publication), args.Error(1)
}

func (m *MockPublicationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockNewsRepository mocks the NewsRepository interface
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, n *models.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepository) Update(ctx context.Context, n *models.News) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(ctx context.Context, id int64) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context, limit int) ([]models.News, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.News), args.Error(1)
}

func (m *MockNewsRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, limit int) ([]models.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) SetStatus(ctx context.Context, id int64, status models.MessageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockFileStore mocks the FileStore interface
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(subdir, filename string, r io.Reader) (string, error) {
	args := m.Called(subdir, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Remove(rel string) error {
	args := m.Called(rel)
	return args.Error(0)
}

// MockNotifier records notifications
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ManuscriptPublished(authorEmail, authorName, title, publication string) {
	m.Called(authorEmail, authorName, title, publication)
}

func (m *MockNotifier) ContactReceived(from, subject, body string) {
	m.Called(from, subject, body)
}
