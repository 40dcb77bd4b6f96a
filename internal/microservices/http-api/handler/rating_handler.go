package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/service"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// RegisterRoutes expects an authenticated group.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/user/:user_id", h.ListByUser)
	rg.GET("/game/:game_id", h.ListByGame)
	rg.GET("/:rating_id", h.Get)
	rg.PUT("/:rating_id", h.Update)
	rg.DELETE("/:rating_id", h.Delete)
}

func (h *RatingHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var in dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rating, err := h.svc.Create(ctx, user, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.svc.List(ctx, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, ratings, q, len(ratings))
}

func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "rating_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rating, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) Update(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "rating_id")
	if !ok {
		return
	}
	var in dto.UpdateRatingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rating, err := h.svc.Update(ctx, user, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) Delete(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "rating_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByUser answers 404 when the user has rated nothing.
func (h *RatingHandler) ListByUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.svc.ListByUser(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(ratings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ratings not found for this user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ratings})
}

func (h *RatingHandler) ListByGame(c *gin.Context) {
	id, ok := parseID(c, "game_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.svc.ListByGame(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ratings})
}
