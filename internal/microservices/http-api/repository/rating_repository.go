package repository

import (
	"context"
	"fmt"

	"playnext/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	FindByID(ctx context.Context, id int64) (*models.Rating, error)
	FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error)
	List(ctx context.Context, skip, limit int) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error)
	ListAll(ctx context.Context) ([]models.Rating, error)
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id int64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create a new rating
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindByUserAndGame retrieves a user's rating for a specific game
func (r *ratingRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) List(ctx context.Context, skip, limit int) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).
		Scopes(paginate(skip, limit)).
		Order("id ASC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rating_date DESC, id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings by user: %w", err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("rating_date DESC, id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings by game: %w", err)
	}
	return ratings, nil
}

// ListAll loads the user/game/score triples of every rating, for building
// the collaborative-filtering matrix.
func (r *ratingRepository) ListAll(ctx context.Context) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.db.WithContext(ctx).
		Select("id", "user_id", "game_id", "rating").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("load all ratings: %w", err)
	}
	return ratings, nil
}

// Update an existing rating's score and comment
func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	result := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", rating.ID).
		Select("rating", "comment", "updated_at").
		Updates(rating)
	if result.Error != nil {
		return fmt.Errorf("update rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
