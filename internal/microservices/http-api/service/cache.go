package service

import (
	"context"

	"playnext/internal/recommend"
)

// RecommendationCache is the read-through store in front of the
// recommendation table. Implementations must tolerate being disabled.
type RecommendationCache interface {
	Get(ctx context.Context, userID string) (*recommend.Result, error)
	Set(ctx context.Context, userID string, res recommend.Result) error
	Invalidate(ctx context.Context, userID string) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*recommend.Result, error)  { return nil, nil }
func (noopCache) Set(context.Context, string, recommend.Result) error      { return nil }
func (noopCache) Invalidate(context.Context, string) error                 { return nil }

func cacheOrNoop(c RecommendationCache) RecommendationCache {
	if c == nil {
		return noopCache{}
	}
	return c
}
