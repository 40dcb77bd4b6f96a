package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playnext/internal/config"
	"playnext/internal/middleware/auth"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. Subject is the username.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	ResolveUser(ctx context.Context, claims *Claims) (*models.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo       repository.UserRepository
	jwtSecret      []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

// Authenticate checks username and password. Unknown users still pay for a
// bcrypt comparison so both failures take the same time.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			auth.BurnPasswordCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveUser loads the account a token was issued for. A token whose
// subject has since been deleted is invalid.
func (s *authService) ResolveUser(ctx context.Context, claims *Claims) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	if claims.UserID != "" && claims.UserID != user.ID {
		// username was freed and reused by a different account
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.accessTokenTTL
}
