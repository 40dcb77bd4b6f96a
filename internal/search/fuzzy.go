// Package search holds the string-similarity scoring used for fuzzy game
// name lookups.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// TokenSortRatio scores two strings from 0 to 100 after lowercasing,
// stripping punctuation and sorting their whitespace separated tokens, so
// word order does not matter.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// Ratio is the normalized indel similarity 2*LCS/(len(a)+len(b)) scaled to
// 0..100 and rounded. Two empty strings score 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	lcs := longestCommonSubsequence(ra, rb)
	return int(math.Round(100 * float64(2*lcs) / float64(total)))
}

// Candidate is anything that can be matched by name.
type Candidate struct {
	ID   int64
	Name string
}

// BestMatch returns the candidate with the highest TokenSortRatio against
// query that scores at least threshold. A later candidate replaces the
// current best only when it scores strictly higher, so ties keep the first.
func BestMatch(query string, candidates []Candidate, threshold int) (Candidate, int, bool) {
	var (
		best      Candidate
		bestScore = -1
		found     bool
	)
	for _, c := range candidates {
		score := TokenSortRatio(query, c.Name)
		if score > bestScore && score >= threshold {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return Candidate{}, 0, false
	}
	return best, bestScore, true
}

func sortedTokens(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	tokens := strings.Fields(cleaned)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func longestCommonSubsequence(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
