package recommend

import (
	"cmp"
	"slices"
)

// Prediction is an estimated score for a game the user has not rated.
type Prediction struct {
	GameID int64   `json:"game_id"`
	Score  float64 `json:"predicted_rating"`
}

// PredictUnrated runs user-user cosine filtering for user and returns the
// top limit predictions for games someone else rated but user has not,
// highest first. Games whose prediction is 0 are dropped.
func PredictUnrated(m Matrix, user string, limit int) []Prediction {
	if limit <= 0 {
		return nil
	}
	sims := UserSimilarities(m, CosineSimilarity)

	seen := make(map[int64]struct{})
	var preds []Prediction
	for other, ratings := range m {
		if other == user {
			continue
		}
		for game := range ratings {
			if _, rated := m[user][game]; rated {
				continue
			}
			if _, done := seen[game]; done {
				continue
			}
			seen[game] = struct{}{}
			if score := PredictRating(m, sims, user, game); score != 0 {
				preds = append(preds, Prediction{GameID: game, Score: score})
			}
		}
	}

	slices.SortFunc(preds, func(a, b Prediction) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.GameID, b.GameID)
	})
	if len(preds) > limit {
		preds = preds[:limit]
	}
	return preds
}
