package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/service"
)

type RecommendationHandler struct {
	svc     service.RecommendationService
	timeout time.Duration
}

// NewRecommendationHandler takes its own timeout since generation waits on
// the model.
func NewRecommendationHandler(svc service.RecommendationService, timeout time.Duration) *RecommendationHandler {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &RecommendationHandler{svc: svc, timeout: timeout}
}

// RegisterRoutes expects an authenticated /recommendations group.
func (h *RecommendationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user", h.ForCaller)
	rg.POST("/user", h.ForCaller)
	rg.GET("/predicted", h.Predicted)
}

// RegisterUserRoutes mounts GET /me/recommendations on an authenticated
// /users group.
func (h *RecommendationHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/me/recommendations", h.ForCaller)
}

func (h *RecommendationHandler) ForCaller(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var q dto.RecommendationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.svc.ForUser(ctx, user.ID, q.ForceGenerate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RecommendationHandler) Predicted(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var q dto.PredictionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	preds, err := h.svc.Predicted(ctx, user.ID, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": preds})
}
