package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playnext/internal/microservices/http-api/models"
	"playnext/internal/recommend"
)

func setupRecommendationRouter(caller *models.User) (*MockRecommendationService, http.Handler) {
	svc := new(MockRecommendationService)
	r := setupRouter()
	h := NewRecommendationHandler(svc, time.Minute)
	h.RegisterRoutes(r.Group("/recommendations", mockAuthMiddleware(caller)))
	h.RegisterUserRoutes(r.Group("/users", mockAuthMiddleware(caller)))
	return svc, r
}

func TestRecommendations_ResponseShape(t *testing.T) {
	caller := regularUser()
	svc, r := setupRecommendationRouter(caller)
	generated := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.On("ForUser", mock.Anything, caller.ID, false).Return(&recommend.Result{
		Suggestions: []recommend.Suggestion{{Name: "Hades", Genre: "Roguelike", Reasoning: "Fast."}},
		RawResponse: "raw text",
		GeneratedAt: generated,
	}, nil)

	w := performRequest(r, http.MethodGet, "/users/me/recommendations", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"structured_recommendations": [{"game_name": "Hades", "genre": "Roguelike", "reasoning": "Fast."}],
		"gemini_response": "raw text",
		"generated_at": "2025-03-10T12:00:00Z"
	}`, w.Body.String())
}

func TestRecommendations_ForceGenerate(t *testing.T) {
	caller := regularUser()
	svc, r := setupRecommendationRouter(caller)
	svc.On("ForUser", mock.Anything, caller.ID, true).Return(&recommend.Result{Suggestions: []recommend.Suggestion{}}, nil)

	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/recommendations/user?force_generate=true", nil).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodPost, "/recommendations/user?force_generate=true", nil).Code)
	svc.AssertNumberOfCalls(t, "ForUser", 2)

	w := performRequest(r, http.MethodGet, "/recommendations/user?force_generate=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredicted(t *testing.T) {
	caller := regularUser()
	svc, r := setupRecommendationRouter(caller)
	svc.On("Predicted", mock.Anything, caller.ID, 0).Return([]recommend.Prediction{{GameID: 2, Score: 8.7}}, nil)
	svc.On("Predicted", mock.Anything, caller.ID, 3).Return([]recommend.Prediction{}, nil)

	w := performRequest(r, http.MethodGet, "/recommendations/predicted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"game_id":2,"predicted_rating":8.7}]}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/recommendations/predicted?limit=3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodGet, "/recommendations/predicted?limit=1000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
