package service

import (
	"context"
	"errors"
	"fmt"

	"playnext/internal/config"
	"playnext/internal/ingestion/igdb"
	"playnext/internal/logging"
	"playnext/internal/microservices/http-api/dto"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
)

// GameCatalog is the slice of the IGDB client the services use.
type GameCatalog interface {
	SearchGames(ctx context.Context, title string) ([]igdb.Game, error)
	GetGame(ctx context.Context, id int64) (*igdb.Game, error)
	CoverURL(ctx context.Context, coverID int64) (string, error)
}

type GameService interface {
	RegisterFromIGDB(ctx context.Context, title string) (*models.Game, error)
	RegisterByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error)
	Create(ctx context.Context, d dto.CreateGameDTO) (*models.Game, error)
	Get(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context, filter repository.GameFilter) ([]models.Game, error)
	Update(ctx context.Context, id int64, d dto.UpdateGameDTO) (*models.Game, error)
	Delete(ctx context.Context, id int64) error
	Ratings(ctx context.Context, id int64) ([]models.Rating, error)
	Search(ctx context.Context, query string) ([]models.Game, error)
	FindByName(ctx context.Context, name string) (*models.Game, error)
}

type gameService struct {
	gameRepo       repository.GameRepository
	ratingRepo     repository.RatingRepository
	catalog        GameCatalog
	fuzzyThreshold int
}

func NewGameService(
	gameRepo repository.GameRepository,
	ratingRepo repository.RatingRepository,
	catalog GameCatalog,
	cfg *config.Config,
) GameService {
	return &gameService{
		gameRepo:       gameRepo,
		ratingRepo:     ratingRepo,
		catalog:        catalog,
		fuzzyThreshold: cfg.FuzzyMatchThreshold,
	}
}

// RegisterFromIGDB stores the first IGDB search hit for title.
func (s *gameService) RegisterFromIGDB(ctx context.Context, title string) (*models.Game, error) {
	results, err := s.searchCatalog(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFoundOnIGDB
	}

	return s.register(ctx, results[0])
}

// RegisterByIGDBID stores the IGDB record with the given id.
func (s *gameService) RegisterByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	if s.catalog == nil {
		return nil, ErrNotFoundOnIGDB
	}
	record, err := s.catalog.GetGame(ctx, igdbID)
	if err != nil {
		if errors.Is(err, igdb.ErrCredentials) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		if !errors.Is(err, igdb.ErrNotFound) {
			logging.Ctx(ctx).Warn().Err(err).Int64("igdb_id", igdbID).Msg("IGDB lookup failed")
		}
		return nil, ErrNotFoundOnIGDB
	}
	return s.register(ctx, *record)
}

func (s *gameService) register(ctx context.Context, record igdb.Game) (*models.Game, error) {
	game := catalogEntry(ctx, s.catalog, record)
	if _, err := s.gameRepo.FindByIGDBID(ctx, *game.IGDBID); err == nil {
		return nil, ErrGameAlreadyRegistered
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, game.Name); err != nil {
		return nil, err
	}

	if err := s.gameRepo.Create(ctx, &game); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrGameAlreadyRegistered
		}
		return nil, err
	}
	logging.Ctx(ctx).Info().Int64("game_id", game.ID).Int64("igdb_id", *game.IGDBID).Msg("game registered from IGDB")
	return &game, nil
}

func (s *gameService) Create(ctx context.Context, d dto.CreateGameDTO) (*models.Game, error) {
	if err := s.ensureNameFree(ctx, d.Name); err != nil {
		return nil, err
	}
	if d.IGDBID != nil {
		if _, err := s.gameRepo.FindByIGDBID(ctx, *d.IGDBID); err == nil {
			return nil, ErrGameAlreadyRegistered
		} else if !repository.IsNotFound(err) {
			return nil, err
		}
	}

	game := d.ToModel()
	if err := s.gameRepo.Create(ctx, &game); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrGameAlreadyRegistered
		}
		return nil, err
	}
	return &game, nil
}

func (s *gameService) Get(ctx context.Context, id int64) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) List(ctx context.Context, filter repository.GameFilter) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSort, filter.Sort)
		}
		return nil, err
	}
	return games, nil
}

func (s *gameService) Update(ctx context.Context, id int64, d dto.UpdateGameDTO) (*models.Game, error) {
	game, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Name != nil && *d.Name != game.Name {
		if err := s.ensureNameFree(ctx, *d.Name); err != nil {
			return nil, err
		}
	}

	d.ApplyTo(game)
	if err := s.gameRepo.Update(ctx, game); err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrGameNotFound
		case repository.IsDuplicate(err):
			return nil, ErrGameAlreadyRegistered
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id int64) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

func (s *gameService) Ratings(ctx context.Context, id int64) ([]models.Rating, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.ratingRepo.ListByGame(ctx, id)
}

// Search looks in the local catalogue first and falls back to IGDB,
// storing whatever IGDB returns so the next search is served locally.
func (s *gameService) Search(ctx context.Context, query string) ([]models.Game, error) {
	local, err := s.gameRepo.SearchByName(ctx, query, repository.DefaultSearchLimit)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	results, err := s.searchCatalog(ctx, query)
	if err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(results))
	for _, r := range results {
		candidate := catalogEntry(ctx, s.catalog, r)
		stored, _, err := s.gameRepo.CreateIfNotExists(ctx, &candidate)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("game", candidate.Name).Msg("failed to store IGDB result")
			continue
		}
		games = append(games, *stored)
	}
	if len(games) == 0 {
		return nil, ErrNoGamesFound
	}
	return games, nil
}

func (s *gameService) FindByName(ctx context.Context, name string) (*models.Game, error) {
	game, score, err := s.gameRepo.FindByNameFuzzy(ctx, name, s.fuzzyThreshold)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	logging.Ctx(ctx).Debug().Str("query", name).Str("match", game.Name).Int("score", score).Msg("fuzzy game lookup")
	return game, nil
}

// searchCatalog treats IGDB failures as an empty result, except a failed
// credential exchange which the caller must see.
func (s *gameService) searchCatalog(ctx context.Context, title string) ([]igdb.Game, error) {
	if s.catalog == nil {
		return nil, nil
	}
	results, err := s.catalog.SearchGames(ctx, title)
	if err != nil {
		if errors.Is(err, igdb.ErrCredentials) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		logging.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("IGDB search failed")
		return nil, nil
	}
	return results, nil
}

// catalogEntry converts an IGDB record, resolving the cover by id when the
// record only carries the reference.
func catalogEntry(ctx context.Context, catalog GameCatalog, record igdb.Game) models.Game {
	game := record.ToModel()
	if game.ImageURL != nil || record.Cover == nil || record.Cover.ID == 0 || catalog == nil {
		return game
	}
	cover, err := catalog.CoverURL(ctx, record.Cover.ID)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Int64("cover_id", record.Cover.ID).Msg("cover lookup failed")
		return game
	}
	game.ImageURL = &cover
	return game
}

func (s *gameService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.gameRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		return ErrGameAlreadyRegistered
	case repository.IsNotFound(err):
		return nil
	default:
		return err
	}
}
