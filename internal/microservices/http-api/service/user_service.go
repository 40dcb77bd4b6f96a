package service

import (
	"context"
	"fmt"

	"playnext/internal/logging"
	"playnext/internal/middleware/auth"
	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, caller *models.User, id string, d dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, caller *models.User, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    RecommendationCache
}

func NewUserService(userRepo repository.UserRepository, cache RecommendationCache) UserService {
	return &userService{userRepo: userRepo, cache: cacheOrNoop(cache)}
}

// Register creates an account after checking username and email are free.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.ensureUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		UserAge:      req.UserAge,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.userRepo.List(ctx, skip, limit)
}

// Update applies a partial update. Callers may edit themselves; admins may
// edit anyone and are the only ones allowed to change the admin flag.
func (s *userService) Update(ctx context.Context, caller *models.User, id string, d dto.UpdateUserDTO) (*models.User, error) {
	if !canManageUser(caller, id) {
		return nil, ErrForbidden
	}
	if d.IsAdmin != nil && !caller.IsAdmin {
		return nil, ErrForbidden
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.Username != nil && *d.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *d.Username); err != nil {
			return nil, err
		}
	}
	if d.Email != nil && *d.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *d.Email); err != nil {
			return nil, err
		}
	}

	d.ApplyTo(user)
	if d.Password != nil {
		hashed, err := auth.HashPassword(*d.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if d.IsAdmin != nil {
		user.IsAdmin = *d.IsAdmin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the account and everything it owns.
func (s *userService) Delete(ctx context.Context, caller *models.User, id string) error {
	if !canManageUser(caller, id) {
		return ErrForbidden
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", id).Msg("failed to drop cached recommendations")
	}
	logging.Ctx(ctx).Info().Str("user_id", id).Str("by", caller.ID).Msg("user deleted")
	return nil
}

func (s *userService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.userRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case repository.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case repository.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func canManageUser(caller *models.User, id string) bool {
	return caller != nil && (caller.ID == id || caller.IsAdmin)
}
