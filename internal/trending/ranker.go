package trending

import (
	"context"
	"sort"

	"github.com/campushot/server/internal/models"
)

// rank joins candidates with their click counts in one batched lookup and
// orders them. The three-way distinction matters: a counter at zero ranks
// above an id with no counter at all, because "looked up and confirmed zero"
// and "no data" are different signals. Ties and all no-data items keep the
// candidate order coming out of the aggregator, which is recency order.
func (s *Service) rank(ctx context.Context, candidates []models.ContentItem, topK int) []models.RankedItem {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	counts := s.counters.GetMany(ctx, ids)

	ranked := make([]models.RankedItem, 0, len(candidates))
	for _, c := range candidates {
		var engagement *int
		if n, ok := counts[c.ID]; ok {
			count := n
			engagement = &count
		}
		ranked = append(ranked, models.RankedItem{Content: c, Engagement: engagement})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Engagement, ranked[j].Engagement
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})

	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}
