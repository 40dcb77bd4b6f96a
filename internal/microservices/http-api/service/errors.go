package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("Username already registered")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Incorrect username or password")
	ErrInvalidToken       = errors.New("Could not validate credentials")
	ErrExpiredToken       = errors.New("Token has expired")

	ErrUserNotFound    = errors.New("User not found")
	ErrGameNotFound    = errors.New("Game not found")
	ErrRatingNotFound  = errors.New("Rating not found")
	ErrBacklogNotFound = errors.New("Backlog item not found")

	ErrForbidden       = errors.New("Not enough permissions")
	ErrDuplicateRating = errors.New("User has already rated this game")

	ErrGameAlreadyRegistered = errors.New("Game already registered")
	ErrNotFoundOnIGDB        = errors.New("Game not found on IGDB")
	ErrNoGamesFound          = errors.New("No games found")
	ErrInvalidSort           = errors.New("Invalid sort field")

	// ErrUpstream wraps a failure of an external dependency that the
	// request cannot recover from.
	ErrUpstream = errors.New("Upstream service unavailable")
)
