package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"playnext/internal/ingestion/igdb"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
	"playnext/internal/recommend"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
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

func (m *MockUserRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGameRepository mocks the GameRepository interface
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) FindByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	args := m.Called(ctx, igdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByName(ctx context.Context, name string) (*models.Game, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) FindByNameFuzzy(ctx context.Context, name string, threshold int) (*models.Game, int, error) {
	args := m.Called(ctx, name, threshold)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*models.Game), args.Int(1), args.Error(2)
}

func (m *MockGameRepository) List(ctx context.Context, filter repository.GameFilter) ([]models.Game, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Game, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) CreateIfNotExists(ctx context.Context, game *models.Game) (*models.Game, bool, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Game), args.Bool(1), args.Error(2)
}

func (m *MockGameRepository) Update(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) FindByID(ctx context.Context, id int64) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) List(ctx context.Context, skip, limit int) ([]models.Rating, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListAll(ctx context.Context) ([]models.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBacklogRepository mocks the BacklogRepository interface
type MockBacklogRepository struct {
	mock.Mock
}

func (m *MockBacklogRepository) Create(ctx context.Context, item *models.BacklogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBacklogRepository) FindByID(ctx context.Context, id int64) (*models.BacklogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacklogItem), args.Error(1)
}

func (m *MockBacklogRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.BacklogItem, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BacklogItem), args.Error(1)
}

func (m *MockBacklogRepository) Update(ctx context.Context, item *models.BacklogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBacklogRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecommendationRepository mocks the RecommendationRepository interface
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) FindByID(ctx context.Context, id int64) (*models.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) FindLatestByUser(ctx context.Context, userID string) (*models.Recommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

// MockCatalog mocks GameCatalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) SearchGames(ctx context.Context, title string) ([]igdb.Game, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]igdb.Game), args.Error(1)
}

func (m *MockCatalog) GetGame(ctx context.Context, id int64) (*igdb.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*igdb.Game), args.Error(1)
}

func (m *MockCatalog) CoverURL(ctx context.Context, coverID int64) (string, error) {
	args := m.Called(ctx, coverID)
	return args.String(0), args.Error(1)
}

// MockGenerator mocks genai.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockCache mocks RecommendationCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, userID string) (*recommend.Result, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommend.Result), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, userID string, res recommend.Result) error {
	args := m.Called(ctx, userID, res)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
