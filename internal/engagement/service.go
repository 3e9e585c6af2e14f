// Package engagement exposes click counting to the UI layer: record a click
// when a user opens a content item's source link, and read counts back when
// rendering lists.
package engagement

import (
	"context"
	"strings"

	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

// CounterStore is the persistence surface the service needs
type CounterStore interface {
	GetOne(ctx context.Context, rawID string) int
	GetMany(ctx context.Context, rawIDs []string) map[string]int
	IncrementOrCreate(ctx context.Context, rawID string, meta models.ClickMeta) error
}

// Service handles engagement operations
type Service struct {
	store  CounterStore
	logger *logging.Logger
}

// NewService creates a new engagement service
func NewService(store CounterStore, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// IncrementClick records one click against the content id. Blank ids are a
// no-op. Write failures are returned to the caller: a click that looks
// recorded in the UI but was not counted is the one inconsistency this
// subsystem refuses to hide.
func (s *Service) IncrementClick(ctx context.Context, rawID string, meta models.ClickMeta) error {
	if strings.TrimSpace(rawID) == "" {
		return nil
	}

	if err := s.store.IncrementOrCreate(ctx, rawID, meta); err != nil {
		s.logger.Error("Failed to record click", logging.WithFields(map[string]interface{}{
			"id":    rawID,
			"error": err.Error(),
		}))
		return err
	}
	return nil
}

// GetCount returns the click count for one content id; zero when the id is
// blank, unknown, or the lookup fails.
func (s *Service) GetCount(ctx context.Context, rawID string) int {
	if strings.TrimSpace(rawID) == "" {
		return 0
	}
	return s.store.GetOne(ctx, rawID)
}

// GetCounts returns click counts for a list of content ids, keyed by the ids
// as supplied. Ids with no counter are omitted.
func (s *Service) GetCounts(ctx context.Context, rawIDs []string) map[string]int {
	if len(rawIDs) == 0 {
		return map[string]int{}
	}
	return s.store.GetMany(ctx, rawIDs)
}
