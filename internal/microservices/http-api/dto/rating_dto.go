package dto

import "playnext/internal/microservices/http-api/models"

// CreateRatingDTO: the caller rates a game once. UserID may be omitted; when
// present it must be the caller.
type CreateRatingDTO struct {
	UserID  *string `json:"user_id"`
	GameID  int64   `json:"game_id" binding:"required,min=1"`
	Rating  float64 `json:"rating" binding:"required,min=1,max=10"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

func (d CreateRatingDTO) ToModel(userID string) models.Rating {
	return models.Rating{
		UserID:  userID,
		GameID:  d.GameID,
		Rating:  d.Rating,
		Comment: d.Comment,
	}
}

// UpdateRatingDTO: partial update, only non-nil fields are applied
type UpdateRatingDTO struct {
	Rating  *float64 `json:"rating" binding:"omitempty,min=1,max=10"`
	Comment *string  `json:"comment" binding:"omitempty,max=2000"`
}

func (d UpdateRatingDTO) ApplyTo(r *models.Rating) {
	if d.Rating != nil {
		r.Rating = *d.Rating
	}
	if d.Comment != nil {
		r.Comment = d.Comment
	}
}
