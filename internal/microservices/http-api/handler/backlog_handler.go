package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/service"
)

type BacklogHandler struct {
	svc service.BacklogService
}

func NewBacklogHandler(svc service.BacklogService) *BacklogHandler {
	return &BacklogHandler{svc: svc}
}

// RegisterRoutes expects an authenticated group. Every entry is scoped to
// the caller.
func (h *BacklogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:backlog_id", h.Get)
	rg.PUT("/:backlog_id", h.Update)
	rg.DELETE("/:backlog_id", h.Delete)
}

func (h *BacklogHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	var in dto.CreateBacklogDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Create(ctx, user, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *BacklogHandler) List(c *gin.Context) {
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

	items, err := h.svc.List(ctx, user, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, items, q, len(items))
}

func (h *BacklogHandler) Get(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "backlog_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Get(ctx, user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *BacklogHandler) Update(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "backlog_id")
	if !ok {
		return
	}
	var in dto.UpdateBacklogDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	item, err := h.svc.Update(ctx, user, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *BacklogHandler) Delete(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "backlog_id")
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
