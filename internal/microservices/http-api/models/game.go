package models

import "time"

// Game is a catalogue entry. IGDB fields are optional because admins may
// register games by hand.
type Game struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"game_id"`
	Name        string     `gorm:"column:game_name;uniqueIndex;not null" json:"game_name"`
	Genre       string     `gorm:"not null;default:''" json:"genre"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Platform    string     `gorm:"not null;default:''" json:"platform"`
	IGDBID      *int64     `gorm:"column:igdb_id;uniqueIndex" json:"igdb_id,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	AgeRating   *string    `json:"age_rating,omitempty"`
	IGDBLink    *string    `gorm:"column:igdb_link" json:"igdb_link,omitempty"`
}

func (Game) TableName() string {
	return "games"
}
