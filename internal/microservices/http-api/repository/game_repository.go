package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playnext/internal/microservices/http-api/models"
	"playnext/internal/search"

	"gorm.io/gorm"
)

const DefaultSearchLimit = 10

// sortColumns whitelists the fields a game list may be ordered by.
var sortColumns = map[string]string{
	"name":         "game_name",
	"game_name":    "game_name",
	"genre":        "genre",
	"release_date": "release_date",
	"platform":     "platform",
	"id":           "id",
	"game_id":      "id",
	"igdb_id":      "igdb_id",
}

// GameFilter narrows a catalogue listing. Text filters are
// case-insensitive substring matches; Sort is a field name, optionally
// prefixed with "-" for descending order.
type GameFilter struct {
	Skip     int
	Limit    int
	Genre    string
	Platform string
	Name     string
	Sort     string
}

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id int64) (*models.Game, error)
	FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error)
	FindByName(ctx context.Context, name string) (*models.Game, error)
	FindByNameFuzzy(ctx context.Context, name string, threshold int) (*models.Game, int, error)
	List(ctx context.Context, filter GameFilter) ([]models.Game, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Game, error)
	CreateIfNotExists(ctx context.Context, game *models.Game) (*models.Game, bool, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int64) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *gameRepository) FindByID(ctx context.Context, id int64) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).Where("igdb_id = ?", igdbID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) FindByName(ctx context.Context, name string) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).Where("game_name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// FindByNameFuzzy scores every catalogue name against name with the
// token-sort ratio and returns the best game scoring at least threshold,
// along with its score. Ties keep the lowest id.
func (r *gameRepository) FindByNameFuzzy(ctx context.Context, name string, threshold int) (*models.Game, int, error) {
	var rows []models.Game
	if err := r.db.WithContext(ctx).
		Select("id", "game_name").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("load game names: %w", err)
	}

	candidates := make([]search.Candidate, len(rows))
	for i, g := range rows {
		candidates[i] = search.Candidate{ID: g.ID, Name: g.Name}
	}

	best, score, ok := search.BestMatch(name, candidates, threshold)
	if !ok {
		return nil, 0, gorm.ErrRecordNotFound
	}
	g, err := r.FindByID(ctx, best.ID)
	if err != nil {
		return nil, 0, err
	}
	return g, score, nil
}

func (r *gameRepository) List(ctx context.Context, f GameFilter) ([]models.Game, error) {
	order, err := sortClause(f.Sort)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Model(&models.Game{})
	if f.Genre != "" {
		db = db.Where(`LOWER(genre) LIKE LOWER(?) ESCAPE '\'`, likePattern(f.Genre))
	}
	if f.Platform != "" {
		db = db.Where(`LOWER(platform) LIKE LOWER(?) ESCAPE '\'`, likePattern(f.Platform))
	}
	if f.Name != "" {
		db = db.Where(`LOWER(game_name) LIKE LOWER(?) ESCAPE '\'`, likePattern(f.Name))
	}

	games := []models.Game{}
	if err := db.Scopes(paginate(f.Skip, f.Limit)).Order(order).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func sortClause(sort string) (string, error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return "id ASC", nil
	}
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := sortColumns[strings.ToLower(sort)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, sort)
	}
	if col == "id" {
		return "id " + dir, nil
	}
	return col + " " + dir + ", id ASC", nil
}

func likePattern(s string) string {
	r := strings.NewReplacer(`%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

func (r *gameRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Game, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	games := []models.Game{}
	if strings.TrimSpace(query) == "" {
		return games, nil
	}
	if err := r.db.WithContext(ctx).
		Where(`LOWER(game_name) LIKE LOWER(?) ESCAPE '\'`, likePattern(query)).
		Order("game_name ASC").
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, fmt.Errorf("search games by name: %w", err)
	}
	return games, nil
}

// CreateIfNotExists returns the stored game matching game's IGDB id, or its
// name when it has none, creating it first when absent. The bool reports
// whether a row was inserted.
func (r *gameRepository) CreateIfNotExists(ctx context.Context, game *models.Game) (*models.Game, bool, error) {
	existing, err := r.lookupExisting(ctx, game)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		// Lost a race with a concurrent insert of the same game
		if IsDuplicate(err) {
			if existing, lookupErr := r.lookupExisting(ctx, game); lookupErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("create game: %w", err)
	}
	return game, true, nil
}

func (r *gameRepository) lookupExisting(ctx context.Context, game *models.Game) (*models.Game, error) {
	if game.IGDBID != nil {
		g, err := r.FindByIGDBID(ctx, *game.IGDBID)
		if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
			return g, err
		}
	}
	return r.FindByName(ctx, game.Name)
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	result := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", game.ID).
		Select("game_name", "genre", "release_date", "platform", "igdb_id", "image_url", "age_rating", "igdb_link").
		Updates(game)
	if result.Error != nil {
		return fmt.Errorf("update game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the game and every rating, backlog entry and
// recommendation that references it.
func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&models.Recommendation{}).Error; err != nil {
			return fmt.Errorf("delete game recommendations: %w", err)
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.BacklogItem{}).Error; err != nil {
			return fmt.Errorf("delete game backlog entries: %w", err)
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete game ratings: %w", err)
		}
		result := tx.Delete(&models.Game{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete game: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
