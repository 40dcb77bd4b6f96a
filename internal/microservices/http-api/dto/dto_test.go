package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playnext/internal/microservices/http-api/models"
)

func strPtr(s string) *string { return &s }

func TestUpdateGameDTO_ApplyTo_OnlySuppliedFields(t *testing.T) {
	g := models.Game{Name: "Celeste", Genre: "Platformer", Platform: "Switch"}

	UpdateGameDTO{Platform: strPtr("Switch, PC"), ReleaseDate: strPtr("2018-01-25")}.ApplyTo(&g)

	assert.Equal(t, "Celeste", g.Name)
	assert.Equal(t, "Platformer", g.Genre)
	assert.Equal(t, "Switch, PC", g.Platform)
	require.NotNil(t, g.ReleaseDate)
	assert.Equal(t, time.Date(2018, 1, 25, 0, 0, 0, 0, time.UTC), *g.ReleaseDate)
}

func TestUpdateRatingDTO_ApplyTo(t *testing.T) {
	r := models.Rating{Rating: 5, Comment: strPtr("meh")}
	score := 8.5
	UpdateRatingDTO{Rating: &score}.ApplyTo(&r)

	assert.InDelta(t, 8.5, r.Rating, 0.001)
	assert.Equal(t, "meh", *r.Comment)
}

func TestUpdateBacklogDTO_ApplyTo(t *testing.T) {
	item := models.BacklogItem{GameID: 1, Status: models.StatusPlanning}
	status := models.StatusDropped
	UpdateBacklogDTO{Status: &status}.ApplyTo(&item)

	assert.Equal(t, int64(1), item.GameID)
	assert.Equal(t, models.StatusDropped, item.Status)
}

func TestUpdateUserDTO_ApplyTo_IgnoresPrivilegedFields(t *testing.T) {
	u := models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"}
	admin := true
	UpdateUserDTO{Email: strPtr("new@example.com"), Password: strPtr("password123"), IsAdmin: &admin}.ApplyTo(&u)

	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "h", u.PasswordHash)
	assert.False(t, u.IsAdmin)
}

func TestPageQuery_Normalize(t *testing.T) {
	assert.Equal(t, DefaultLimit, PageQuery{}.Normalize().Limit)
	assert.Equal(t, 5, PageQuery{Limit: 5}.Normalize().Limit)
}
