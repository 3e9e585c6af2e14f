package trending

import (
	"context"
	"sync"
	"time"

	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

const (
	// candidateFloor is the minimum candidate pool fetched per source.
	// Oversizing leaves room for items that later turn out to have zero or
	// no engagement data.
	candidateFloor = 150
	// candidateOversize multiplies the requested topK into a pool size.
	candidateOversize = 10
	// futureSkew tolerates slightly-future publish dates before treating
	// them as data errors and dropping the item from recency windows.
	futureSkew = 7 * 24 * time.Hour
)

// gatherCandidates fetches from both content sources concurrently and merges
// survivors into one candidate list, events first. Per-source failures are
// logged and tolerated; an empty merge tells the caller to fall back to the
// leaderboard.
func (s *Service) gatherCandidates(ctx context.Context, windowDays, topK int) []models.ContentItem {
	limit := topK * candidateOversize
	if limit < candidateFloor {
		limit = candidateFloor
	}

	var (
		wg          sync.WaitGroup
		eventItems  []models.ContentItem
		noticeItems []models.ContentItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		eventItems = s.gatherEvents(ctx, windowDays, limit)
	}()
	go func() {
		defer wg.Done()
		noticeItems = s.gatherNotices(ctx, windowDays, limit)
	}()
	wg.Wait()

	s.logger.Debug("Gathered trending candidates", logging.WithFields(map[string]interface{}{
		"window_days": windowDays,
		"events":      len(eventItems),
		"notices":     len(noticeItems),
	}))

	return append(eventItems, noticeItems...)
}

// gatherEvents runs the event source's strategy cascade: the typed-date query
// first, then one retry through the string-date strategy if it came back
// empty.
func (s *Service) gatherEvents(ctx context.Context, windowDays, limit int) []models.ContentItem {
	items, err := s.events.FetchRecentWithinDays(ctx, windowDays, limit)
	if err != nil {
		s.logger.Warn("Event source failed", logging.WithField("error", err.Error()))
		return nil
	}
	if len(items) > 0 {
		return items
	}

	s.logger.Warn("No events via typed-date query, retrying string-date strategy", logging.WithField("window_days", windowDays))
	items, err = s.events.FetchRecentByDate(ctx, windowDays, limit)
	if err != nil {
		s.logger.Warn("Event string-date strategy failed", logging.WithField("error", err.Error()))
		return nil
	}
	return items
}

// gatherNotices fetches a notice page and applies the recency window
// client-side, since the notice collection has no queryable typed date.
// Items dated further than futureSkew ahead are data errors and dropped.
func (s *Service) gatherNotices(ctx context.Context, windowDays, limit int) []models.ContentItem {
	items, err := s.notices.FetchRecent(ctx, limit)
	if err != nil {
		s.logger.Warn("Notice source failed", logging.WithField("error", err.Error()))
		return nil
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -windowDays)
	horizon := now.Add(futureSkew)

	kept := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.Before(cutoff) || item.PublishedAt.After(horizon) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
