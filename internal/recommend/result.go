package recommend

import "time"

// Result is what a recommendation request returns, whether freshly
// generated or served from a cache.
type Result struct {
	Suggestions []Suggestion `json:"structured_recommendations"`
	RawResponse string       `json:"gemini_response"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// FreshAt reports whether r is still inside window at now.
func (r Result) FreshAt(now time.Time, window time.Duration) bool {
	return !r.GeneratedAt.IsZero() && now.Sub(r.GeneratedAt) < window
}
