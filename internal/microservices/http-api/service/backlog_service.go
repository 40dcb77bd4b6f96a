package service

import (
	"context"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
)

type BacklogService interface {
	Create(ctx context.Context, caller *models.User, d dto.CreateBacklogDTO) (*models.BacklogItem, error)
	Get(ctx context.Context, caller *models.User, id int64) (*models.BacklogItem, error)
	List(ctx context.Context, caller *models.User, skip, limit int) ([]models.BacklogItem, error)
	Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateBacklogDTO) (*models.BacklogItem, error)
	Delete(ctx context.Context, caller *models.User, id int64) error
}

type backlogService struct {
	backlogRepo repository.BacklogRepository
	gameRepo    repository.GameRepository
}

func NewBacklogService(backlogRepo repository.BacklogRepository, gameRepo repository.GameRepository) BacklogService {
	return &backlogService{
		backlogRepo: backlogRepo,
		gameRepo:    gameRepo,
	}
}

func (s *backlogService) Create(ctx context.Context, caller *models.User, d dto.CreateBacklogDTO) (*models.BacklogItem, error) {
	if d.UserID != nil && *d.UserID != caller.ID {
		return nil, ErrForbidden
	}
	if err := s.ensureGame(ctx, d.GameID); err != nil {
		return nil, err
	}

	item := d.ToModel(caller.ID)
	if err := s.backlogRepo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get returns one of the caller's own entries.
func (s *backlogService) Get(ctx context.Context, caller *models.User, id int64) (*models.BacklogItem, error) {
	item, err := s.backlogRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBacklogNotFound
		}
		return nil, err
	}
	if item.UserID != caller.ID {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *backlogService) List(ctx context.Context, caller *models.User, skip, limit int) ([]models.BacklogItem, error) {
	return s.backlogRepo.ListByUser(ctx, caller.ID, skip, limit)
}

func (s *backlogService) Update(ctx context.Context, caller *models.User, id int64, d dto.UpdateBacklogDTO) (*models.BacklogItem, error) {
	item, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if d.GameID != nil && *d.GameID != item.GameID {
		if err := s.ensureGame(ctx, *d.GameID); err != nil {
			return nil, err
		}
	}

	d.ApplyTo(item)
	if err := s.backlogRepo.Update(ctx, item); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBacklogNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *backlogService) Delete(ctx context.Context, caller *models.User, id int64) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.backlogRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrBacklogNotFound
		}
		return err
	}
	return nil
}

func (s *backlogService) ensureGame(ctx context.Context, gameID int64) error {
	if _, err := s.gameRepo.FindByID(ctx, gameID); err != nil {
		if repository.IsNotFound(err) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}
