package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
)

func TestCreateBacklog_Success(t *testing.T) {
	backlog, games := new(MockBacklogRepository), new(MockGameRepository)
	svc := NewBacklogService(backlog, games)

	games.On("FindByID", mock.Anything, int64(2)).Return(&models.Game{ID: 2}, nil)
	backlog.On("Create", mock.Anything, mock.AnythingOfType("*models.BacklogItem")).Return(nil)

	item, err := svc.Create(context.Background(), &models.User{ID: "u1"}, dto.CreateBacklogDTO{GameID: 2, Status: models.StatusPlaying})
	require.NoError(t, err)
	assert.Equal(t, "u1", item.UserID)
	assert.Equal(t, models.StatusPlaying, item.Status)
}

func TestCreateBacklog_ForOtherUserForbidden(t *testing.T) {
	svc := NewBacklogService(new(MockBacklogRepository), new(MockGameRepository))

	_, err := svc.Create(context.Background(), &models.User{ID: "u1"}, dto.CreateBacklogDTO{UserID: strPtr("u2"), GameID: 2, Status: models.StatusPlaying})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateBacklog_GameMissing(t *testing.T) {
	backlog, games := new(MockBacklogRepository), new(MockGameRepository)
	svc := NewBacklogService(backlog, games)

	games.On("FindByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), &models.User{ID: "u1"}, dto.CreateBacklogDTO{GameID: 2, Status: models.StatusPlaying})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGetBacklog_Ownership(t *testing.T) {
	backlog := new(MockBacklogRepository)
	svc := NewBacklogService(backlog, new(MockGameRepository))

	backlog.On("FindByID", mock.Anything, int64(1)).Return(&models.BacklogItem{ID: 1, UserID: "u2"}, nil)
	backlog.On("FindByID", mock.Anything, int64(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), &models.User{ID: "u1"}, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(context.Background(), &models.User{ID: "u1"}, 2)
	assert.ErrorIs(t, err, ErrBacklogNotFound)
}

func TestUpdateBacklog_Partial(t *testing.T) {
	backlog := new(MockBacklogRepository)
	svc := NewBacklogService(backlog, new(MockGameRepository))
	stored := &models.BacklogItem{ID: 1, UserID: "u1", GameID: 2, Status: models.StatusPlanning}

	backlog.On("FindByID", mock.Anything, int64(1)).Return(stored, nil)
	backlog.On("Update", mock.Anything, stored).Return(nil)

	status := models.StatusCompleted
	got, err := svc.Update(context.Background(), &models.User{ID: "u1"}, 1, dto.UpdateBacklogDTO{Status: &status, Rating: floatPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, int64(2), got.GameID)
	require.NotNil(t, got.Rating)
}

func TestUpdateBacklog_NewGameMustExist(t *testing.T) {
	backlog, games := new(MockBacklogRepository), new(MockGameRepository)
	svc := NewBacklogService(backlog, games)

	backlog.On("FindByID", mock.Anything, int64(1)).Return(&models.BacklogItem{ID: 1, UserID: "u1", GameID: 2}, nil)
	games.On("FindByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), &models.User{ID: "u1"}, 1, dto.UpdateBacklogDTO{GameID: int64Ptr(9)})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDeleteBacklog_NotOwner(t *testing.T) {
	backlog := new(MockBacklogRepository)
	svc := NewBacklogService(backlog, new(MockGameRepository))

	backlog.On("FindByID", mock.Anything, int64(1)).Return(&models.BacklogItem{ID: 1, UserID: "u2"}, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), &models.User{ID: "u1"}, 1), ErrForbidden)
	backlog.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
