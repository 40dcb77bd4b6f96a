package igdb

import (
	"strings"
	"time"

	"playnext/internal/microservices/http-api/models"
)

const releaseDateLayout = "Jan 2, 2006"

// DefaultReleaseDate stands in when IGDB has no parseable release date.
var DefaultReleaseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Cover struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ReleaseDate struct {
	ID    int64  `json:"id"`
	Human string `json:"human"`
}

type AgeRating struct {
	ID     int64 `json:"id"`
	Rating int   `json:"rating"`
}

// Game is the subset of an IGDB game record the API stores.
type Game struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Genres       []Named       `json:"genres"`
	Platforms    []Named       `json:"platforms"`
	Cover        *Cover        `json:"cover"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
	AgeRatings   []AgeRating   `json:"age_ratings"`
}

func joinNames(items []Named) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	return strings.Join(names, ", ")
}

// ReleaseDate parses the first human-readable release date, falling back to
// DefaultReleaseDate.
func (g Game) ReleaseDate() time.Time {
	if len(g.ReleaseDates) == 0 {
		return DefaultReleaseDate
	}
	parsed, err := time.Parse(releaseDateLayout, g.ReleaseDates[0].Human)
	if err != nil {
		return DefaultReleaseDate
	}
	return parsed
}

// AgeRatingLabel returns the label of the highest known rating code.
func (g Game) AgeRatingLabel() (string, bool) {
	best := 0
	for _, r := range g.AgeRatings {
		if _, ok := ageRatingLabels[r.Rating]; ok && r.Rating > best {
			best = r.Rating
		}
	}
	return MapAgeRating(best)
}

// ToModel converts the record into a local catalogue entry.
func (g Game) ToModel() models.Game {
	igdbID := g.ID
	release := g.ReleaseDate()
	game := models.Game{
		Name:        g.Name,
		Genre:       joinNames(g.Genres),
		Platform:    joinNames(g.Platforms),
		ReleaseDate: &release,
		IGDBID:      &igdbID,
	}
	if g.URL != "" {
		link := g.URL
		game.IGDBLink = &link
	}
	if g.Cover != nil {
		if cover := NormalizeCoverURL(g.Cover.URL); cover != "" {
			game.ImageURL = &cover
		}
	}
	if label, ok := g.AgeRatingLabel(); ok {
		game.AgeRating = &label
	}
	return game
}
