package models

import "time"

const (
	MinRating = 1.0
	MaxRating = 10.0
)

type Rating struct {
	ID         int64     `json:"rating_id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_game"`
	GameID     int64     `json:"game_id" gorm:"not null;uniqueIndex:idx_ratings_user_game;index"`
	Rating     float64   `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 10"`
	Comment    *string   `json:"comment,omitempty"`
	RatingDate time.Time `json:"rating_date" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
