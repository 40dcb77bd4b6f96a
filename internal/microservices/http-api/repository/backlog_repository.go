package repository

import (
	"context"
	"fmt"

	"playnext/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BacklogRepository interface {
	Create(ctx context.Context, item *models.BacklogItem) error
	FindByID(ctx context.Context, id int64) (*models.BacklogItem, error)
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.BacklogItem, error)
	Update(ctx context.Context, item *models.BacklogItem) error
	Delete(ctx context.Context, id int64) error
}

type backlogRepository struct {
	db *gorm.DB
}

func NewBacklogRepository(db *gorm.DB) BacklogRepository {
	return &backlogRepository{db: db}
}

func (r *backlogRepository) Create(ctx context.Context, item *models.BacklogItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create backlog item: %w", err)
	}
	return nil
}

func (r *backlogRepository) FindByID(ctx context.Context, id int64) (*models.BacklogItem, error) {
	var item models.BacklogItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser returns the user's entries oldest first. A non-positive limit
// returns them all.
func (r *backlogRepository) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.BacklogItem, error) {
	items := []models.BacklogItem{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(paginate(skip, limit)).
		Order("added_date ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list backlog: %w", err)
	}
	return items, nil
}

func (r *backlogRepository) Update(ctx context.Context, item *models.BacklogItem) error {
	result := r.db.WithContext(ctx).
		Model(&models.BacklogItem{}).
		Where("id = ?", item.ID).
		Select("game_id", "status", "rating").
		Updates(item)
	if result.Error != nil {
		return fmt.Errorf("update backlog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *backlogRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.BacklogItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete backlog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
