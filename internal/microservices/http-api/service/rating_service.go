package service

import (
	"context"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
)

type RatingService interface {
	Create(ctx context.Context, caller *models.User, d dto.CreateRatingDTO) (*models.Rating, error)
	Get(ctx context.Context, id int64) (*models.Rating, error)
	List(ctx context.Context, skip, limit int) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error)
	Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateRatingDTO) (*models.Rating, error)
	Delete(ctx context.Context, caller *models.User, id int64) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	gameRepo   repository.GameRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, gameRepo repository.GameRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		gameRepo:   gameRepo,
	}
}

// Create records the caller's rating of a game. Each user rates a game once.
func (s *ratingService) Create(ctx context.Context, caller *models.User, d dto.CreateRatingDTO) (*models.Rating, error) {
	if d.UserID != nil && *d.UserID != caller.ID {
		return nil, ErrForbidden
	}

	// Check if game exists
	if _, err := s.gameRepo.FindByID(ctx, d.GameID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	// Check if rating already exists
	if _, err := s.ratingRepo.FindByUserAndGame(ctx, caller.ID, d.GameID); err == nil {
		return nil, ErrDuplicateRating
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	rating := d.ToModel(caller.ID)
	if err := s.ratingRepo.Create(ctx, &rating); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrDuplicateRating
		}
		return nil, err
	}
	return &rating, nil
}

func (s *ratingService) Get(ctx context.Context, id int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) List(ctx context.Context, skip, limit int) ([]models.Rating, error) {
	return s.ratingRepo.List(ctx, skip, limit)
}

func (s *ratingService) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	return s.ratingRepo.ListByUser(ctx, userID)
}

func (s *ratingService) ListByGame(ctx context.Context, gameID int64) ([]models.Rating, error) {
	return s.ratingRepo.ListByGame(ctx, gameID)
}

func (s *ratingService) Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateRatingDTO) (*models.Rating, error) {
	rating, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	d.ApplyTo(rating)
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) Delete(ctx context.Context, caller *models.User, id int64) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrRatingNotFound
		}
		return err
	}
	return nil
}

// owned loads a rating and checks it belongs to caller.
func (s *ratingService) owned(ctx context.Context, caller *models.User, id int64) (*models.Rating, error) {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rating.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return rating, nil
}
