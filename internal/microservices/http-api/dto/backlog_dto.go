package dto

import "playnext/internal/microservices/http-api/models"

// CreateBacklogDTO: add a game to the caller's backlog
type CreateBacklogDTO struct {
	UserID *string              `json:"user_id"`
	GameID int64                `json:"game_id" binding:"required,min=1"`
	Status models.BacklogStatus `json:"status" binding:"required,backlog_status"`
	Rating *float64             `json:"rating" binding:"omitempty,min=1,max=10"`
}

func (d CreateBacklogDTO) ToModel(userID string) models.BacklogItem {
	return models.BacklogItem{
		UserID: userID,
		GameID: d.GameID,
		Status: d.Status,
		Rating: d.Rating,
	}
}

// UpdateBacklogDTO: partial update, only non-nil fields are applied
type UpdateBacklogDTO struct {
	GameID *int64                `json:"game_id" binding:"omitempty,min=1"`
	Status *models.BacklogStatus `json:"status" binding:"omitempty,backlog_status"`
	Rating *float64              `json:"rating" binding:"omitempty,min=1,max=10"`
}

func (d UpdateBacklogDTO) ApplyTo(item *models.BacklogItem) {
	if d.GameID != nil {
		item.GameID = *d.GameID
	}
	if d.Status != nil {
		item.Status = *d.Status
	}
	if d.Rating != nil {
		item.Rating = d.Rating
	}
}
