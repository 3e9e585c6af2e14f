package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushot/server/internal/hotkey"
	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

// counterBatchSize bounds the number of ids per multi-key lookup. Ten is the
// keyed-in query cap on Firestore-style stores; keeping the same batch shape
// here keeps lookup behavior identical across backends.
const counterBatchSize = 10

// CounterStore persists per-content click counters in the hotClicks
// collection, keyed by canonical id.
type CounterStore struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  *logging.Logger
}

// NewCounterStore creates a counter store backed by the given Mongo handle
func NewCounterStore(m *Mongo, logger *logging.Logger) *CounterStore {
	return &CounterStore{
		col:     m.Collection(colHotClicks),
		timeout: m.timeout,
		logger:  logger,
	}
}

// GetOne returns the click count for one raw id. Absent counters and
// transport failures both read as zero; lookups never fail the caller.
func (s *CounterStore) GetOne(ctx context.Context, rawID string) int {
	key := hotkey.Normalize(rawID)
	if key == "" {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc models.ClickCounter
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0
	}
	if err != nil {
		s.logger.Warn("Counter lookup failed", logging.WithFields(map[string]interface{}{
			"id":    key,
			"error": err.Error(),
		}))
		return 0
	}
	return doc.Count
}

// GetMany returns click counts for the given raw ids, keyed by the raw id as
// supplied. Ids without a counter document are omitted, not zero-filled, so
// callers can tell "no counter" apart from "counter at zero".
//
// Canonical ids are looked up in fixed-size batches issued concurrently. A
// batch whose query fails falls back to one lookup per id, also concurrent;
// ids that fail both paths are silently dropped and partial results returned.
func (s *CounterStore) GetMany(ctx context.Context, rawIDs []string) map[string]int {
	canonicalToRaw := make(map[string]string, len(rawIDs))
	ordered := make([]string, 0, len(rawIDs))
	for _, raw := range rawIDs {
		key := hotkey.Normalize(raw)
		if key == "" {
			continue
		}
		// First raw id to claim a canonical key wins the reverse mapping.
		if _, seen := canonicalToRaw[key]; !seen {
			canonicalToRaw[key] = raw
			ordered = append(ordered, key)
		}
	}
	if len(ordered) == 0 {
		return map[string]int{}
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		counts = make(map[string]int)
	)

	for _, batch := range chunkIDs(ordered, counterBatchSize) {
		wg.Add(1)
		go func(ids []string) {
			defer wg.Done()

			found, err := s.fetchBatch(ctx, ids)
			if err != nil {
				s.logger.Warn("Batch counter query failed, falling back to per-id lookups", logging.WithFields(map[string]interface{}{
					"batch_size": len(ids),
					"error":      err.Error(),
				}))
				found = s.fetchEach(ctx, ids)
			}

			mu.Lock()
			for key, count := range found {
				if raw, ok := canonicalToRaw[key]; ok {
					counts[raw] = count
				}
			}
			mu.Unlock()
		}(batch)
	}
	wg.Wait()

	return counts
}

// fetchBatch issues one multi-key query for a batch of canonical ids.
func (s *CounterStore) fetchBatch(ctx context.Context, ids []string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	found := make(map[string]int, len(ids))
	for cursor.Next(ctx) {
		var doc models.ClickCounter
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		found[doc.ID] = doc.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// fetchEach looks each id up individually, skipping failures.
func (s *CounterStore) fetchEach(ctx context.Context, ids []string) map[string]int {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		found = make(map[string]int, len(ids))
	)

	for _, id := range ids {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()

			opCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			var doc models.ClickCounter
			if err := s.col.FindOne(opCtx, bson.M{"_id": key}).Decode(&doc); err != nil {
				return
			}
			mu.Lock()
			found[key] = doc.Count
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return found
}

// IncrementOrCreate records one click against the raw id's counter, creating
// the counter document on first click. Supplied display metadata overwrites
// stored fields; absent fields keep their stored values. Blank ids are a
// no-op. This is the one store operation whose failure propagates, so the UI
// can react to a click that was not recorded.
//
// The read-then-write sequence is the accepted weak concurrency contract:
// two concurrent first clicks on a brand-new id can both observe "absent" and
// lose one update. A single $inc upsert would close that window; increments
// on existing counters already go through $inc and do not race.
func (s *CounterStore) IncrementOrCreate(ctx context.Context, rawID string, meta models.ClickMeta) error {
	key := hotkey.Normalize(rawID)
	if key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var existing models.ClickCounter
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		doc := models.ClickCounter{
			ID:             key,
			Count:          1,
			Title:          meta.Title,
			SourceURL:      meta.SourceURL,
			PosterImageURL: meta.PosterImageURL,
			UpdatedAt:      time.Now(),
		}
		if _, err := s.col.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("create counter %s: %w", key, err)
		}
		s.logger.Debug("Counter created", logging.WithField("id", key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read counter %s: %w", key, err)
	}

	set := bson.M{"updatedAt": time.Now()}
	if meta.Title != "" {
		set["title"] = meta.Title
	}
	if meta.SourceURL != "" {
		set["sourceUrl"] = meta.SourceURL
	}
	if meta.PosterImageURL != "" {
		set["posterImageUrl"] = meta.PosterImageURL
	}

	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": set,
	}
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, update); err != nil {
		return fmt.Errorf("increment counter %s: %w", key, err)
	}

	s.logger.Debug("Counter incremented", logging.WithFields(map[string]interface{}{
		"id":   key,
		"prev": existing.Count,
	}))
	return nil
}

// TopByCount returns the highest-count counters, the global leaderboard.
func (s *CounterStore) TopByCount(ctx context.Context, limit int) ([]models.ClickCounter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ClickCounter
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return out, nil
}

// chunkIDs splits ids into batches of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		return [][]string{ids}
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
