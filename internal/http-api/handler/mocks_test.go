package handler_test

import (
	"context"
	"io"
	"os"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	args := m.Called(ctx, fullName, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*service.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Submit(ctx context.Context, actor service.Actor, in service.SubmitInput) (*models.Manuscript, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockWorkflowService) Publish(ctx context.Context, actor service.Actor, manuscriptID int64) (*service.PublishResult, error) {
	args := m.Called(ctx, actor, manuscriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockWorkflowService) StartReview(ctx context.Context, actor service.Actor, manuscriptID int64, comment string) (*models.Manuscript, error) {
	args := m.Called(ctx, actor, manuscriptID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockWorkflowService) Decide(ctx context.Context, actor service.Actor, manuscriptID int64, accept bool, comment string) (*models.Manuscript, error) {
	args := m.Called(ctx, actor, manuscriptID, accept, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockWorkflowService) ListForRole(ctx context.Context, actor service.Actor) ([]models.Manuscript, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]models.Manuscript), args.Error(1)
}

func (m *MockWorkflowService) Get(ctx context.Context, actor service.Actor, manuscriptID int64) (*models.Manuscript, error) {
	args := m.Called(ctx, actor, manuscriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manuscript), args.Error(1)
}

func (m *MockWorkflowService) History(ctx context.Context, actor service.Actor, manuscriptID int64) ([]models.ManuscriptHistory, error) {
	args := m.Called(ctx, actor, manuscriptID)
	return args.Get(0).([]models.ManuscriptHistory), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, actor service.Actor, manuscriptID int64, text string, score int) (*models.Review, error) {
	args := m.Called(ctx, actor, manuscriptID, text, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) GetOwnReview(ctx context.Context, actor service.Actor, manuscriptID int64) (*models.Manuscript, *models.Review, error) {
	args := m.Called(ctx, actor, manuscriptID)
	var ms *models.Manuscript
	if v := args.Get(0); v != nil {
		ms = v.(*models.Manuscript)
	}
	var r *models.Review
	if v := args.Get(1); v != nil {
		r = v.(*models.Review)
	}
	return ms, r, args.Error(2)
}

func (m *MockReviewService) ListReviews(ctx context.Context, actor service.Actor, manuscriptID int64) ([]models.Review, error) {
	args := m.Called(ctx, actor, manuscriptID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) AssignReviewer(ctx context.Context, actor service.Actor, manuscriptID, reviewerID int64) (*models.Review, error) {
	args := m.Called(ctx, actor, manuscriptID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Home(ctx context.Context) (*service.HomePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HomePage), args.Error(1)
}

func (m *MockContentService) ListNews(ctx context.Context) ([]models.News, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.News), args.Error(1)
}

func (m *MockContentService) GetNews(ctx context.Context, id int64) (*models.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockContentService) ListPublications(ctx context.Context) ([]models.Publication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Publication), args.Error(1)
}

func (m *MockContentService) GetPublication(ctx context.Context, id int64) (*service.PublicationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicationDetail), args.Error(1)
}

func (m *MockContentService) CreateNews(ctx context.Context, actor service.Actor, in service.NewsInput) (*models.News, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockContentService) UpdateNews(ctx context.Context, actor service.Actor, id int64, in service.NewsInput) (*models.News, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.News), args.Error(1)
}

func (m *MockContentService) DeleteNews(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockContentService) CreatePublication(ctx context.Context, actor service.Actor, in service.PublicationInput) (*models.Publication, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

func (m *MockContentService) UpdatePublication(ctx context.Context, actor service.Actor, id int64, in service.PublicationInput) (*models.Publication, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

func (m *MockContentService) DeletePublication(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) SubmitContact(ctx context.Context, actor *service.Actor, in service.ContactInput) (*models.Message, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) List(ctx context.Context, actor service.Actor) ([]models.Message, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageService) MarkDone(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockMessageService) MarkRead(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockUserAdminService struct {
	mock.Mock
}

func (m *MockUserAdminService) List(ctx context.Context, actor service.Actor, query, role string) ([]models.User, error) {
	args := m.Called(ctx, actor, query, role)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserAdminService) Get(ctx context.Context, actor service.Actor, id int64) (*models.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) ChangeRole(ctx context.Context, actor service.Actor, id int64, role string) (*models.User, error) {
	args := m.Called(ctx, actor, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdminService) SetBlocked(ctx context.Context, actor service.Actor, id int64, blocked bool) (*models.User, error) {
	args := m.Called(ctx, actor, id, blocked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Stats(ctx context.Context, actor service.Actor) (*service.Stats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

func (m *MockReportService) AdminDashboard(ctx context.Context, actor service.Actor) (*service.AdminDashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminDashboard), args.Error(1)
}

func (m *MockReportService) ExportManuscriptsCSV(ctx context.Context, actor service.Actor, w io.Writer) error {
	args := m.Called(ctx, actor, w)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, actor service.Actor) (*service.Dashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

type MockMediaOpener struct {
	mock.Mock
}

func (m *MockMediaOpener) Open(rel string) (*os.File, error) {
	args := m.Called(rel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*os.File), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- SETUP ---

const testToken = "test-token"

var (
	authorActor   = service.Actor{UserID: 10, Role: models.RoleAuthor}
	staffActor    = service.Actor{UserID: 20, Role: models.RoleStaff}
	reviewerActor = service.Actor{UserID: 30, Role: models.RoleReviewer}
	adminActor    = service.Actor{UserID: 40, Role: models.RoleAdmin}
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// authenticatedAs makes the mock accept testToken as a session of the given actor.
func authenticatedAs(authService *MockAuthService, a service.Actor) {
	authService.On("Authenticate", mock.Anything, testToken).Return(&service.Claims{
		UserID:           a.UserID,
		Role:             a.Role,
		RegisteredClaims: jwt.RegisteredClaims{ID: "sess-1"},
	}, nil)
}
