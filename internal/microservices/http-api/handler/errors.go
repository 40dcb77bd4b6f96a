package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"playnext/internal/logging"
	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/service"
)

const requestTimeout = 10 * time.Second

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrGameAlreadyRegistered),
		errors.Is(err, service.ErrInvalidSort):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrBacklogNotFound),
		errors.Is(err, service.ErrNotFoundOnIGDB),
		errors.Is(err, service.ErrNoGamesFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateRating):
		return http.StatusConflict
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": msg}. Unknown errors are logged and hidden
// behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	switch status {
	case http.StatusInternalServerError:
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
	case http.StatusBadGateway:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("upstream failure")
		c.JSON(status, gin.H{"error": service.ErrUpstream.Error()})
	case http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// caller returns the authenticated user or writes a 401.
func caller(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	return user, true
}

func bindPage(c *gin.Context) (dto.PageQuery, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return q, false
	}
	return q.Normalize(), true
}

func paginated(c *gin.Context, data any, q dto.PageQuery, count int) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"pagination": dto.Pagination{
			Skip:  q.Skip,
			Limit: q.Limit,
			Count: count,
		},
	})
}
