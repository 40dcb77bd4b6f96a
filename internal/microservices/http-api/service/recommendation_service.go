package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"playnext/internal/config"
	"playnext/internal/genai"
	"playnext/internal/ingestion/igdb"
	"playnext/internal/logging"
	"playnext/internal/metrics"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/repository"
	"playnext/internal/recommend"
)

const DefaultPredictionLimit = 10

type RecommendationService interface {
	ForUser(ctx context.Context, userID string, force bool) (*recommend.Result, error)
	Predicted(ctx context.Context, userID string, limit int) ([]recommend.Prediction, error)
}

type RecommendationDeps struct {
	Recommendations repository.RecommendationRepository
	Ratings         repository.RatingRepository
	Backlog         repository.BacklogRepository
	Games           repository.GameRepository
	Catalog         GameCatalog
	Generator       genai.Generator
	Cache           RecommendationCache
}

type recommendationService struct {
	recRepo        repository.RecommendationRepository
	ratingRepo     repository.RatingRepository
	backlogRepo    repository.BacklogRepository
	gameRepo       repository.GameRepository
	catalog        GameCatalog
	generator      genai.Generator
	cache          RecommendationCache
	freshness      time.Duration
	fuzzyThreshold int
	now            func() time.Time
}

func NewRecommendationService(deps RecommendationDeps, cfg *config.Config) RecommendationService {
	return &recommendationService{
		recRepo:        deps.Recommendations,
		ratingRepo:     deps.Ratings,
		backlogRepo:    deps.Backlog,
		gameRepo:       deps.Games,
		catalog:        deps.Catalog,
		generator:      deps.Generator,
		cache:          cacheOrNoop(deps.Cache),
		freshness:      cfg.RecommendationFreshness,
		fuzzyThreshold: cfg.FuzzyMatchThreshold,
		now:            time.Now,
	}
}

// ForUser serves the user's recommendations from Redis, then from the
// latest stored run inside the freshness window, and otherwise generates a
// new run. force skips both caches.
//
// The freshness check and the insert are not atomic: two concurrent misses
// for one user may both generate and store a run.
func (s *recommendationService) ForUser(ctx context.Context, userID string, force bool) (*recommend.Result, error) {
	log := logging.Ctx(ctx).With().Str("user_id", userID).Logger()

	if force {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate recommendation cache")
		}
	} else {
		if res, err := s.cache.Get(ctx, userID); err != nil {
			log.Warn().Err(err).Msg("recommendation cache read failed")
		} else if res != nil {
			metrics.RecommendationsTotal.WithLabelValues(metrics.SourceRedis).Inc()
			return res, nil
		}

		res, err := s.fromLatestRun(ctx, userID)
		if err != nil {
			return nil, err
		}
		if res != nil {
			s.warm(ctx, userID, *res)
			metrics.RecommendationsTotal.WithLabelValues(metrics.SourceDatabase).Inc()
			return res, nil
		}
	}

	return s.generate(ctx, userID)
}

// fromLatestRun returns the newest stored run if it is still fresh.
func (s *recommendationService) fromLatestRun(ctx context.Context, userID string) (*recommend.Result, error) {
	latest, err := s.recRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load latest recommendation: %w", err)
	}

	res := recommend.Result{
		Suggestions: decodeSuggestions(ctx, latest.StructuredOutput),
		RawResponse: latest.RawOutput,
		GeneratedAt: latest.Timestamp,
	}
	if !res.FreshAt(s.now(), s.freshness) {
		return nil, nil
	}
	return &res, nil
}

func (s *recommendationService) generate(ctx context.Context, userID string) (*recommend.Result, error) {
	log := logging.Ctx(ctx).With().Str("user_id", userID).Logger()

	prompt, err := s.buildPrompt(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, genai.ErrNotConfigured) {
			log.Warn().Msg("generative model not configured, returning empty recommendations")
		} else {
			log.Error().Err(err).Msg("recommendation generation failed")
		}
		metrics.RecommendationsTotal.WithLabelValues(metrics.SourceDegraded).Inc()
		return &recommend.Result{Suggestions: []recommend.Suggestion{}, GeneratedAt: now}, nil
	}

	suggestions, err := recommend.ParseSuggestions(raw)
	if err != nil {
		log.Warn().Err(err).Msg("model output had no usable recommendations")
	}

	firstGame, err := s.resolve(ctx, suggestions)
	if err != nil {
		return nil, err
	}

	structured, err := json.Marshal(suggestions)
	if err != nil {
		return nil, fmt.Errorf("encode suggestions: %w", err)
	}

	rec := &models.Recommendation{
		UserID:           userID,
		Timestamp:        now,
		RawOutput:        raw,
		StructuredOutput: string(structured),
	}
	if len(suggestions) > 0 {
		rec.Reason = suggestions[0].Reasoning
	}
	if firstGame != nil {
		rec.GameID = &firstGame.ID
		rec.Score = s.predictScore(ctx, userID, firstGame.ID)
	}
	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	res := recommend.Result{Suggestions: suggestions, RawResponse: raw, GeneratedAt: now}
	s.warm(ctx, userID, res)
	metrics.RecommendationsTotal.WithLabelValues(metrics.SourceGenerated).Inc()
	log.Info().Int("suggestions", len(suggestions)).Int64("recommendation_id", rec.ID).Msg("recommendations generated")
	return &res, nil
}

// buildPrompt describes the user's taste by game name.
func (s *recommendationService) buildPrompt(ctx context.Context, userID string) (string, error) {
	ratings, err := s.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	backlog, err := s.backlogRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return "", err
	}

	rated := make([]recommend.RatedGame, len(ratings))
	for i, r := range ratings {
		rated[i] = recommend.RatedGame{GameID: r.GameID, Score: r.Rating}
	}
	entries := make([]recommend.BacklogEntry, len(backlog))
	for i, b := range backlog {
		entries[i] = recommend.BacklogEntry{GameID: b.GameID, Status: b.Status, Rating: b.Rating}
	}
	prefs := recommend.ClassifyPreferences(rated, entries)

	names := make(map[int64]string)
	lookup := func(ids []int64) ([]string, error) {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := names[id]; ok {
				out = append(out, name)
				continue
			}
			g, err := s.gameRepo.FindByID(ctx, id)
			if err != nil {
				if repository.IsNotFound(err) {
					continue
				}
				return nil, err
			}
			names[id] = g.Name
			out = append(out, g.Name)
		}
		return out, nil
	}

	var in recommend.PromptInput
	if in.Favorites, err = lookup(prefs.Favorites); err != nil {
		return "", err
	}
	if in.Backlog, err = lookup(prefs.Backlog); err != nil {
		return "", err
	}
	if in.Disliked, err = lookup(prefs.Disliked); err != nil {
		return "", err
	}
	return recommend.BuildPrompt(in, recommend.DefaultSuggestionCount), nil
}

// resolve matches each suggestion to a catalogue game, pulling unknown
// titles from IGDB, and fills in missing links. It returns the first game
// resolved. Only a failed IGDB credential exchange is an error.
func (s *recommendationService) resolve(ctx context.Context, suggestions []recommend.Suggestion) (*models.Game, error) {
	var first *models.Game
	for i := range suggestions {
		sg := &suggestions[i]

		game, _, err := s.gameRepo.FindByNameFuzzy(ctx, sg.Name, s.fuzzyThreshold)
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
		if game == nil && sg.IGDBLink == "" {
			game, err = s.fromCatalog(ctx, sg.Name)
			if err != nil {
				return nil, err
			}
		}
		if game == nil {
			continue
		}
		if sg.IGDBLink == "" && game.IGDBLink != nil {
			sg.IGDBLink = *game.IGDBLink
		}
		if first == nil {
			first = game
		}
	}
	return first, nil
}

func (s *recommendationService) fromCatalog(ctx context.Context, name string) (*models.Game, error) {
	if s.catalog == nil {
		return nil, nil
	}
	results, err := s.catalog.SearchGames(ctx, name)
	if err != nil {
		if errors.Is(err, igdb.ErrCredentials) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		logging.Ctx(ctx).Warn().Err(err).Str("title", name).Msg("IGDB lookup for recommendation failed")
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	candidate := catalogEntry(ctx, s.catalog, results[0])
	game, _, err := s.gameRepo.CreateIfNotExists(ctx, &candidate)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("title", name).Msg("failed to store IGDB result")
		return nil, nil
	}
	return game, nil
}

// predictScore is the collaborative-filtering estimate of how userID would
// rate gameID, or 0 when nothing can be inferred.
func (s *recommendationService) predictScore(ctx context.Context, userID string, gameID int64) float64 {
	m, err := s.ratingMatrix(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to build rating matrix")
		return 0
	}
	sims := recommend.UserSimilarities(m, recommend.CosineSimilarity)
	return recommend.PredictRating(m, sims, userID, gameID)
}

func (s *recommendationService) Predicted(ctx context.Context, userID string, limit int) ([]recommend.Prediction, error) {
	if limit <= 0 {
		limit = DefaultPredictionLimit
	}
	m, err := s.ratingMatrix(ctx)
	if err != nil {
		return nil, err
	}
	preds := recommend.PredictUnrated(m, userID, limit)
	if preds == nil {
		preds = []recommend.Prediction{}
	}
	return preds, nil
}

func (s *recommendationService) ratingMatrix(ctx context.Context) (recommend.Matrix, error) {
	ratings, err := s.ratingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	m := make(recommend.Matrix)
	for _, r := range ratings {
		if m[r.UserID] == nil {
			m[r.UserID] = make(recommend.Ratings)
		}
		m[r.UserID][r.GameID] = r.Rating
	}
	return m, nil
}

func (s *recommendationService) warm(ctx context.Context, userID string, res recommend.Result) {
	if err := s.cache.Set(ctx, userID, res); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("failed to cache recommendations")
	}
}

func decodeSuggestions(ctx context.Context, structured string) []recommend.Suggestion {
	out := []recommend.Suggestion{}
	if structured == "" {
		return out
	}
	if err := json.Unmarshal([]byte(structured), &out); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("stored recommendation has unreadable structured output")
		return []recommend.Suggestion{}
	}
	return out
}
