package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/token", h.Login)
}

// Login exchanges username and password, sent as a form or as JSON, for a
// bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.authService.TokenTTL().Seconds()),
	})
}
