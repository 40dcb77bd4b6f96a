package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/repository"
	"playnext/internal/microservices/http-api/service"
)

type GameHandler struct {
	svc  service.GameService
	auth gin.HandlerFunc
}

func NewGameHandler(svc service.GameService, auth gin.HandlerFunc) *GameHandler {
	return &GameHandler{svc: svc, auth: auth}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes
	rg.GET("", h.List)
	rg.GET("/search/:query", h.Search)
	rg.GET("/lookup", h.Lookup)
	rg.GET("/:game_id", h.Get)
	rg.GET("/:game_id/ratings", h.Ratings)

	// Admin-only routes
	rg.POST("", h.auth, middleware.RequireAdmin(), h.Create)
	rg.PUT("/:game_id", h.auth, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:game_id", h.auth, middleware.RequireAdmin(), h.Delete)
}

func (h *GameHandler) List(c *gin.Context) {
	var q dto.GameListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	q.PageQuery = q.PageQuery.Normalize()

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	games, err := h.svc.List(ctx, repository.GameFilter{
		Skip:     q.Skip,
		Limit:    q.Limit,
		Genre:    q.Genre,
		Platform: q.Platform,
		Name:     q.Name,
		Sort:     q.SortBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	paginated(c, games, q.PageQuery, len(games))
}

func (h *GameHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "game_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	game, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Create registers a game. With ?title= or ?igdb_id= the record is pulled
// from IGDB, otherwise the JSON body is stored as given.
func (h *GameHandler) Create(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if title := strings.TrimSpace(c.Query("title")); title != "" {
		game, err := h.svc.RegisterFromIGDB(ctx, title)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, game)
		return
	}
	if raw := strings.TrimSpace(c.Query("igdb_id")); raw != "" {
		igdbID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || igdbID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid igdb_id"})
			return
		}
		game, err := h.svc.RegisterByIGDBID(ctx, igdbID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, game)
		return
	}

	var in dto.CreateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	game, err := h.svc.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "game_id")
	if !ok {
		return
	}
	var in dto.UpdateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	game, err := h.svc.Update(ctx, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "game_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) Ratings(c *gin.Context) {
	id, ok := parseID(c, "game_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.svc.Ratings(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ratings})
}

// Search looks locally first and falls back to IGDB.
func (h *GameHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Param("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	games, err := h.svc.Search(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": games})
}

// Lookup resolves ?name= to the closest catalogue entry.
func (h *GameHandler) Lookup(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	game, err := h.svc.FindByName(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}
