package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/service"
)

func setupRatingRouter(caller *models.User) (*MockRatingService, http.Handler) {
	svc := new(MockRatingService)
	r := setupRouter()
	NewRatingHandler(svc).RegisterRoutes(r.Group("/ratings", mockAuthMiddleware(caller)))
	return svc, r
}

func TestCreateRating(t *testing.T) {
	caller := regularUser()
	svc, r := setupRatingRouter(caller)
	in := dto.CreateRatingDTO{GameID: 3, Rating: 8.5, Comment: stringPtr("great")}
	svc.On("Create", mock.Anything, caller, in).Return(&models.Rating{ID: 1, UserID: caller.ID, GameID: 3, Rating: 8.5}, nil)

	w := performRequest(r, http.MethodPost, "/ratings", in)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, caller.ID, decodeBody(t, w)["user_id"])
}

func TestCreateRating_OutOfRange(t *testing.T) {
	svc, r := setupRatingRouter(regularUser())

	for _, score := range []float64{0, 10.5} {
		w := performRequest(r, http.MethodPost, "/ratings", map[string]any{"game_id": 3, "rating": score})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRating_ForAnotherUser(t *testing.T) {
	caller := regularUser()
	svc, r := setupRatingRouter(caller)
	svc.On("Create", mock.Anything, caller, mock.Anything).Return(nil, service.ErrForbidden)

	w := performRequest(r, http.MethodPost, "/ratings", map[string]any{"user_id": "someone-else", "game_id": 3, "rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateRating_GameMissing(t *testing.T) {
	caller := regularUser()
	svc, r := setupRatingRouter(caller)
	svc.On("Create", mock.Anything, caller, mock.Anything).Return(nil, service.ErrGameNotFound)

	w := performRequest(r, http.MethodPost, "/ratings", map[string]any{"game_id": 99, "rating": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRatings(t *testing.T) {
	svc, r := setupRatingRouter(regularUser())
	svc.On("List", mock.Anything, 10, 5).Return([]models.Rating{{ID: 1}, {ID: 2}}, nil)

	w := performRequest(r, http.MethodGet, "/ratings?skip=10&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)
}

func TestUpdateRating_NotOwner(t *testing.T) {
	caller := regularUser()
	svc, r := setupRatingRouter(caller)
	in := dto.UpdateRatingDTO{Comment: stringPtr("changed")}
	svc.On("Update", mock.Anything, caller, int64(4), in).Return(nil, service.ErrForbidden)

	w := performRequest(r, http.MethodPut, "/ratings/4", in)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRating(t *testing.T) {
	caller := regularUser()
	svc, r := setupRatingRouter(caller)
	svc.On("Delete", mock.Anything, caller, int64(4)).Return(nil)
	svc.On("Delete", mock.Anything, caller, int64(5)).Return(service.ErrRatingNotFound)

	assert.Equal(t, http.StatusNoContent, performRequest(r, http.MethodDelete, "/ratings/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, performRequest(r, http.MethodDelete, "/ratings/5", nil).Code)
}

func TestGetRating(t *testing.T) {
	svc, r := setupRatingRouter(regularUser())
	svc.On("Get", mock.Anything, int64(4)).Return(&models.Rating{ID: 4, Rating: 6}, nil)

	w := performRequest(r, http.MethodGet, "/ratings/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 6, decodeBody(t, w)["rating"])
}

func TestRatingsByUser_EmptyIsNotFound(t *testing.T) {
	svc, r := setupRatingRouter(regularUser())
	svc.On("ListByUser", mock.Anything, "u2").Return([]models.Rating{}, nil)
	svc.On("ListByUser", mock.Anything, "u3").Return([]models.Rating{{ID: 1, UserID: "u3"}}, nil)

	w := performRequest(r, http.MethodGet, "/ratings/user/u2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ratings not found for this user"}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/ratings/user/u3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRatingsByGame(t *testing.T) {
	svc, r := setupRatingRouter(regularUser())
	svc.On("ListByGame", mock.Anything, int64(3)).Return([]models.Rating{}, nil)

	w := performRequest(r, http.MethodGet, "/ratings/game/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
