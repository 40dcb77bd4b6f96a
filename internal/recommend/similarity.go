// Package recommend implements the collaborative-filtering math and the
// prompt/parse halves of AI-assisted recommendation generation.
package recommend

import (
	"cmp"
	"math"
	"slices"
)

// Ratings maps a game id to a user's score for it.
type Ratings map[int64]float64

// Matrix maps a user id to that user's ratings.
type Matrix map[string]Ratings

// Similarities holds pairwise scores keyed both ways: s[a][b] == s[b][a].
type Similarities[K comparable] map[K]map[K]float64

// Get returns s[a][b], or 0 when the pair was never scored.
func (s Similarities[K]) Get(a, b K) float64 {
	return s[a][b]
}

func (s Similarities[K]) set(a, b K, v float64) {
	if s[a] == nil {
		s[a] = make(map[K]float64)
	}
	s[a][b] = v
}

// commonKeys returns the keys present in both vectors, sorted so every
// reduction over them runs in the same order whichever side is passed first.
func commonKeys[K cmp.Ordered](a, b map[K]float64) []K {
	keys := make([]K, 0, min(len(a), len(b)))
	for k := range a {
		if _, ok := b[k]; ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Cosine computes the cosine similarity of a and b restricted to the keys
// they share. No overlap or a zero magnitude yields 0.
func Cosine[K cmp.Ordered](a, b map[K]float64) float64 {
	common := commonKeys(a, b)
	if len(common) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for _, k := range common {
		dot += a[k] * b[k]
		magA += a[k] * a[k]
		magB += b[k] * b[k]
	}
	magA, magB = math.Sqrt(magA), math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}

// Pearson computes the Pearson correlation of a and b over their shared
// keys, centring each side on its mean over that shared subset only.
func Pearson[K cmp.Ordered](a, b map[K]float64) float64 {
	common := commonKeys(a, b)
	if len(common) == 0 {
		return 0
	}

	var sumA, sumB float64
	for _, k := range common {
		sumA += a[k]
		sumB += b[k]
	}
	n := float64(len(common))
	meanA, meanB := sumA/n, sumB/n

	var num, varA, varB float64
	for _, k := range common {
		da, db := a[k]-meanA, b[k]-meanB
		num += da * db
		varA += da * da
		varB += db * db
	}
	den := math.Sqrt(varA) * math.Sqrt(varB)
	if den == 0 {
		return 0
	}
	return num / den
}

// CosineSimilarity is Cosine over two users' game ratings.
func CosineSimilarity(a, b Ratings) float64 {
	return Cosine(map[int64]float64(a), map[int64]float64(b))
}

// PearsonCorrelation is Pearson over two users' game ratings.
func PearsonCorrelation(a, b Ratings) float64 {
	return Pearson(map[int64]float64(a), map[int64]float64(b))
}

// Pairwise scores every unordered pair of rows in m with fn and stores the
// result under both orderings.
func Pairwise[R, C cmp.Ordered](m map[R]map[C]float64, fn func(a, b map[C]float64) float64) Similarities[R] {
	rows := make([]R, 0, len(m))
	for r := range m {
		rows = append(rows, r)
	}
	slices.Sort(rows)

	sims := make(Similarities[R], len(rows))
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			v := fn(m[rows[i]], m[rows[j]])
			sims.set(rows[i], rows[j], v)
			sims.set(rows[j], rows[i], v)
		}
	}
	return sims
}

// UserSimilarities scores every pair of users in the matrix with fn
// (CosineSimilarity or PearsonCorrelation).
func UserSimilarities(m Matrix, fn func(a, b Ratings) float64) Similarities[string] {
	plain := make(map[string]map[int64]float64, len(m))
	for u, r := range m {
		plain[u] = r
	}
	return Pairwise(plain, func(a, b map[int64]float64) float64 {
		return fn(a, b)
	})
}

// Transpose flips a user→game→score matrix into game→user→score.
func Transpose(m Matrix) map[int64]map[string]float64 {
	out := make(map[int64]map[string]float64)
	for user, ratings := range m {
		for game, score := range ratings {
			if out[game] == nil {
				out[game] = make(map[string]float64)
			}
			out[game][user] = score
		}
	}
	return out
}

// ItemSimilarities scores every pair of games by cosine similarity over
// the users who rated them.
func ItemSimilarities(m Matrix) Similarities[int64] {
	return Pairwise(Transpose(m), Cosine[string])
}

// PredictRating estimates user's score for game as the similarity-weighted
// mean of other users' scores for it. Negative similarities pull the
// estimate down while their magnitude still counts in the denominator.
// It returns 0 when nobody else rated the game.
func PredictRating(m Matrix, sims Similarities[string], user string, game int64) float64 {
	others := make([]string, 0, len(m))
	for other := range m {
		if other != user {
			others = append(others, other)
		}
	}
	slices.Sort(others)

	var num, den float64
	for _, other := range others {
		score, ok := m[other][game]
		if !ok {
			continue
		}
		s := sims.Get(user, other)
		num += s * score
		den += math.Abs(s)
	}
	if den == 0 {
		return 0
	}
	return num / den
}
