// Package trending computes the ranked "hot right now" list: recent
// candidates from both content sources joined with click counters, with a
// counter-only leaderboard as the degraded-mode answer when no time-windowed
// candidates can be found.
package trending

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campushot/server/internal/cache"
	"github.com/campushot/server/internal/hotkey"
	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

const (
	// trendingCacheKeyFmt keys memoized results by window and size.
	trendingCacheKeyFmt = "trending:%d:%d"

	// leaderboardTitleFallback labels counter docs whose display metadata
	// never got denormalized.
	leaderboardTitleFallback = "인기 글"
	// leaderboardTag marks leaderboard rows in the unified shape.
	leaderboardTag = "인기"
)

// EventSource serves recent event content, with a string-date fallback
// strategy for stores where the typed date query cannot run.
type EventSource interface {
	FetchRecentWithinDays(ctx context.Context, windowDays, limit int) ([]models.ContentItem, error)
	FetchRecentByDate(ctx context.Context, windowDays, limit int) ([]models.ContentItem, error)
}

// NoticeSource serves a capped newest-first page of notice content.
type NoticeSource interface {
	FetchRecent(ctx context.Context, limit int) ([]models.ContentItem, error)
}

// CounterSource serves click counts and the global leaderboard.
type CounterSource interface {
	GetMany(ctx context.Context, rawIDs []string) map[string]int
	TopByCount(ctx context.Context, limit int) ([]models.ClickCounter, error)
}

// Service orchestrates candidate gathering, count joining, and ranking
type Service struct {
	events   EventSource
	notices  NoticeSource
	counters CounterSource
	cache    cache.Cache
	logger   *logging.Logger
}

// NewService creates a new trending service. cache may be nil to disable
// memoization.
func NewService(events EventSource, notices NoticeSource, counters CounterSource, c cache.Cache, logger *logging.Logger) *Service {
	return &Service{
		events:   events,
		notices:  notices,
		counters: counters,
		cache:    c,
		logger:   logger,
	}
}

// GetTrending returns up to topK items from the last windowDays days, ranked
// by click count. When no candidate survives the window, the global
// leaderboard is returned instead so the caller always gets something
// plausible to render.
func (s *Service) GetTrending(ctx context.Context, windowDays, topK int) ([]models.RankedItem, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	if topK <= 0 {
		topK = 10
	}

	cacheKey := fmt.Sprintf(trendingCacheKeyFmt, windowDays, topK)
	if cached, ok := s.loadFromCache(cacheKey); ok {
		return cached, nil
	}

	candidates := s.gatherCandidates(ctx, windowDays, topK)
	if len(candidates) == 0 {
		s.logger.Warn("No trending candidates in window, serving leaderboard", logging.WithField("window_days", windowDays))
		return s.Leaderboard(ctx, topK)
	}

	ranked := s.rank(ctx, candidates, topK)

	if s.cache != nil {
		s.cache.Set(cacheKey, ranked)
	}
	return ranked, nil
}

// Leaderboard returns the topK counters by click count, mapped into ranked
// items from the counters' denormalized display metadata alone. No recency
// filtering and no content-source join.
func (s *Service) Leaderboard(ctx context.Context, topK int) ([]models.RankedItem, error) {
	if topK <= 0 {
		topK = 10
	}

	counters, err := s.counters.TopByCount(ctx, topK)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	items := make([]models.RankedItem, 0, len(counters))
	for _, c := range counters {
		count := c.Count
		title := c.Title
		if title == "" {
			title = leaderboardTitleFallback
		}
		items = append(items, models.RankedItem{
			Content: models.ContentItem{
				ID:             hotkey.Display(c.ID),
				Title:          title,
				PublishedAt:    c.UpdatedAt,
				SourceURL:      c.SourceURL,
				PosterImageURL: c.PosterImageURL,
				Tags:           []string{leaderboardTag},
				Source:         "hot",
			},
			Engagement: &count,
		})
	}
	return items, nil
}

// loadFromCache re-types a cached result. Redis hands values back as generic
// JSON, so a failed type assertion goes through a marshal round trip.
func (s *Service) loadFromCache(key string) ([]models.RankedItem, bool) {
	if s.cache == nil {
		return nil, false
	}

	cached, ok := s.cache.Get(key)
	if !ok || cached == nil {
		return nil, false
	}

	if items, ok := cached.([]models.RankedItem); ok {
		return items, true
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return nil, false
	}
	var decoded []models.RankedItem
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}
	if len(decoded) == 0 {
		return nil, false
	}
	return decoded, true
}
