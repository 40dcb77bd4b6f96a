package dto

import (
	"time"

	"playnext/internal/microservices/http-api/models"
)

const DateLayout = "2006-01-02"

// CreateGameDTO: manual catalogue entry
type CreateGameDTO struct {
	Name        string  `json:"game_name" binding:"required,max=255"`
	Genre       string  `json:"genre" binding:"max=255"`
	ReleaseDate *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	Platform    string  `json:"platform" binding:"max=512"`
	IGDBID      *int64  `json:"igdb_id" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	AgeRating   *string `json:"age_rating" binding:"omitempty,max=32"`
	IGDBLink    *string `json:"igdb_link" binding:"omitempty,url"`
}

func (d CreateGameDTO) ToModel() models.Game {
	return models.Game{
		Name:        d.Name,
		Genre:       d.Genre,
		ReleaseDate: parseDate(d.ReleaseDate),
		Platform:    d.Platform,
		IGDBID:      d.IGDBID,
		ImageURL:    d.ImageURL,
		AgeRating:   d.AgeRating,
		IGDBLink:    d.IGDBLink,
	}
}

// UpdateGameDTO: partial update, only non-nil fields are applied
type UpdateGameDTO struct {
	Name        *string `json:"game_name" binding:"omitempty,min=1,max=255"`
	Genre       *string `json:"genre" binding:"omitempty,max=255"`
	ReleaseDate *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	Platform    *string `json:"platform" binding:"omitempty,max=512"`
	IGDBID      *int64  `json:"igdb_id" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	AgeRating   *string `json:"age_rating" binding:"omitempty,max=32"`
	IGDBLink    *string `json:"igdb_link" binding:"omitempty,url"`
}

func (d UpdateGameDTO) ApplyTo(g *models.Game) {
	if d.Name != nil {
		g.Name = *d.Name
	}
	if d.Genre != nil {
		g.Genre = *d.Genre
	}
	if d.ReleaseDate != nil {
		g.ReleaseDate = parseDate(d.ReleaseDate)
	}
	if d.Platform != nil {
		g.Platform = *d.Platform
	}
	if d.IGDBID != nil {
		g.IGDBID = d.IGDBID
	}
	if d.ImageURL != nil {
		g.ImageURL = d.ImageURL
	}
	if d.AgeRating != nil {
		g.AgeRating = d.AgeRating
	}
	if d.IGDBLink != nil {
		g.IGDBLink = d.IGDBLink
	}
}

// GameListQuery: GET /games query string
type GameListQuery struct {
	PageQuery
	Genre    string `form:"genre"`
	Platform string `form:"platform"`
	Name     string `form:"name"`
	SortBy   string `form:"sort_by"`
}

// parseDate expects a value already checked by the datetime binding.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
