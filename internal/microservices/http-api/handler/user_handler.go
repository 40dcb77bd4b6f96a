package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/service"
)

type UserHandler struct {
	users   service.UserService
	ratings service.RatingService
	backlog service.BacklogService
	auth    gin.HandlerFunc
}

func NewUserHandler(
	users service.UserService,
	ratings service.RatingService,
	backlog service.BacklogService,
	auth gin.HandlerFunc,
) *UserHandler {
	return &UserHandler{users: users, ratings: ratings, backlog: backlog, auth: auth}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public
	rg.POST("", h.Register)

	// Admin only
	rg.GET("", h.auth, middleware.RequireAdmin(), h.List)

	// The caller's own account
	rg.GET("/me", h.auth, h.Me)
	rg.PUT("/me", h.auth, h.UpdateMe)
	rg.DELETE("/me", h.auth, h.DeleteMe)
	rg.GET("/me/backlog", h.auth, h.MyBacklog)
	rg.GET("/me/ratings", h.auth, h.MyRatings)
	rg.POST("/me/ratings", h.auth, h.RateGame)

	// Self or admin, checked by the service
	rg.GET("/:user_id", h.auth, h.Get)
	rg.PUT("/:user_id", h.auth, h.Update)
	rg.DELETE("/:user_id", h.auth, h.Delete)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	users, err := h.users.List(ctx, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, users, q, len(users))
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	h.update(c, user.ID)
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	h.delete(c, user.ID)
}

func (h *UserHandler) MyBacklog(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	items, err := h.backlog.List(ctx, user, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, q, len(items))
}

func (h *UserHandler) MyRatings(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.ratings.ListByUser(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ratings})
}

// RateGame is POST /users/me/ratings: the body's user_id, if any, must be
// the caller.
func (h *UserHandler) RateGame(c *gin.Context) {
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

	rating, err := h.ratings.Create(ctx, user, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.Get(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	h.update(c, c.Param("user_id"))
}

func (h *UserHandler) Delete(c *gin.Context) {
	h.delete(c, c.Param("user_id"))
}

func (h *UserHandler) update(c *gin.Context, id string) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var in dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.users.Update(ctx, user, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) delete(c *gin.Context, id string) {
	user, ok := caller(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.users.Delete(ctx, user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
