package models

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

var ErrInvalidStructuredOutput = errors.New("structured output is not valid JSON")

// Recommendation stores one generation run: the raw model text and the
// parsed suggestions serialized as JSON.
type Recommendation struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"recommendation_id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	GameID           *int64    `gorm:"index" json:"game_id,omitempty"`
	Timestamp        time.Time `gorm:"not null;index" json:"timestamp"`
	Reason           string    `gorm:"column:recommendation_reason;type:text" json:"recommendation_reason"`
	Score            float64   `gorm:"column:documentation_rating" json:"documentation_rating"`
	RawOutput        string    `gorm:"column:raw_gemini_output;type:text" json:"raw_gemini_output"`
	StructuredOutput string    `gorm:"column:structured_json_output;type:text" json:"structured_json_output"`
}

// BeforeSave rejects rows whose structured payload would not round-trip.
func (r *Recommendation) BeforeSave(tx *gorm.DB) error {
	if r.StructuredOutput != "" && !json.Valid([]byte(r.StructuredOutput)) {
		return ErrInvalidStructuredOutput
	}
	return nil
}

func (Recommendation) TableName() string {
	return "recommendations"
}
