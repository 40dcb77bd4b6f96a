package repository

import (
	"context"
	"fmt"

	"playnext/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	FindByID(ctx context.Context, id int64) (*models.Recommendation, error)
	FindLatestByUser(ctx context.Context, userID string) (*models.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create recommendation: %w", err)
	}
	return nil
}

func (r *recommendationRepository) FindByID(ctx context.Context, id int64) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindLatestByUser returns the user's most recent generation run.
func (r *recommendationRepository) FindLatestByUser(ctx context.Context, userID string) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
