package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
	"playnext/internal/microservices/http-api/service"
	"playnext/internal/recommend"
)

// --- HELPER FUNCTIONS FOR POINTERS ---
func stringPtr(s string) *string { return &s }

// mockAuthMiddleware stands in for AuthMiddleware with a fixed caller.
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.KeyUser, user)
		c.Set(middleware.KeyUserID, user.ID)
		c.Set(middleware.KeyUsername, user.Username)
		c.Set(middleware.KeyRole, user.Role())
		c.Next()
	}
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) ResolveUser(ctx context.Context, claims *service.Claims) (*models.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) TokenTTL() time.Duration {
	return 30 * time.Minute
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, caller *models.User, id string, d dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(ctx, caller, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, caller *models.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockGameService mocks the GameService interface
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) RegisterFromIGDB(ctx context.Context, title string) (*models.Game, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) RegisterByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	args := m.Called(ctx, igdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Create(ctx context.Context, d dto.CreateGameDTO) (*models.Game, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Get(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) List(ctx context.Context, filter repository.GameFilter) ([]models.Game, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameService) Update(ctx context.Context, id int64, d dto.UpdateGameDTO) (*models.Game, error) {
	args := m.Called(ctx, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameService) Ratings(ctx context.Context, id int64) ([]models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockGameService) Search(ctx context.Context, query string) ([]models.Game, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameService) FindByName(ctx context.Context, name string) (*models.Game, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Create(ctx context.Context, caller *models.User, d dto.CreateRatingDTO) (*models.Rating, error) {
	args := m.Called(ctx, caller, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Get(ctx context.Context, id int64) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) List(ctx context.Context, skip, limit int) ([]models.Rating, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateRatingDTO) (*models.Rating, error) {
	args := m.Called(ctx, caller, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, caller *models.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockBacklogService mocks the BacklogService interface
type MockBacklogService struct {
	mock.Mock
}

func (m *MockBacklogService) Create(ctx context.Context, caller *models.User, d dto.CreateBacklogDTO) (*models.BacklogItem, error) {
	args := m.Called(ctx, caller, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacklogItem), args.Error(1)
}

func (m *MockBacklogService) Get(ctx context.Context, caller *models.User, id int64) (*models.BacklogItem, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacklogItem), args.Error(1)
}

func (m *MockBacklogService) List(ctx context.Context, caller *models.User, skip, limit int) ([]models.BacklogItem, error) {
	args := m.Called(ctx, caller, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BacklogItem), args.Error(1)
}

func (m *MockBacklogService) Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateBacklogDTO) (*models.BacklogItem, error) {
	args := m.Called(ctx, caller, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacklogItem), args.Error(1)
}

func (m *MockBacklogService) Delete(ctx context.Context, caller *models.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockRecommendationService mocks the RecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) ForUser(ctx context.Context, userID string, force bool) (*recommend.Result, error) {
	args := m.Called(ctx, userID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommend.Result), args.Error(1)
}

func (m *MockRecommendationService) Predicted(ctx context.Context, userID string, limit int) ([]recommend.Prediction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recommend.Prediction), args.Error(1)
}
