package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

// eventFetchFloor is the minimum page size requested from the collection,
// regardless of how few items the caller asked for.
const eventFetchFloor = 20

// EventStore reads the events collection and maps raw documents into the
// unified content shape. Two query strategies exist: a typed-timestamp range
// query, and an unfiltered page filtered client-side on the string date
// fields for stores where the typed field is missing or unindexed.
type EventStore struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  *logging.Logger
}

// NewEventStore creates an event store backed by the given Mongo handle
func NewEventStore(m *Mongo, logger *logging.Logger) *EventStore {
	return &EventStore{
		col:     m.Collection(colEvents),
		timeout: m.timeout,
		logger:  logger,
	}
}

// FetchRecentWithinDays returns events whose typed date falls inside the
// window, newest first. When the range query itself fails (missing index,
// mixed-type date field) it falls through to the string-date strategy once.
func (s *EventStore) FetchRecentWithinDays(ctx context.Context, windowDays, limit int) ([]models.ContentItem, error) {
	if limit < eventFetchFloor {
		limit = eventFetchFloor
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(opCtx, bson.M{"date": bson.M{"$gte": cutoff}}, opts)
	if err != nil {
		s.logger.Warn("Typed-date event query failed, trying string-date strategy", logging.WithField("error", err.Error()))
		return s.FetchRecentByDate(ctx, windowDays, limit)
	}
	defer cursor.Close(opCtx)

	var docs []models.EventDoc
	if err := cursor.All(opCtx, &docs); err != nil {
		s.logger.Warn("Typed-date event decode failed, trying string-date strategy", logging.WithField("error", err.Error()))
		return s.FetchRecentByDate(ctx, windowDays, limit)
	}

	now := time.Now()
	items := make([]models.ContentItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, eventToContent(doc, now))
	}
	return items, nil
}

// FetchRecentByDate is the fallback strategy: pull an oversized page in
// insertion order and keep the documents whose string date fields parse into
// the window. Less efficient and less precise, but works against stores
// where the typed date field is absent on some records.
func (s *EventStore) FetchRecentByDate(ctx context.Context, windowDays, limit int) ([]models.ContentItem, error) {
	if limit < eventFetchFloor {
		limit = eventFetchFloor
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit * 3))

	cursor, err := s.col.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("event page query: %w", err)
	}
	defer cursor.Close(opCtx)

	var docs []models.EventDoc
	if err := cursor.All(opCtx, &docs); err != nil {
		return nil, fmt.Errorf("decode event page: %w", err)
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -windowDays)

	items := make([]models.ContentItem, 0, limit)
	for _, doc := range docs {
		item := eventToContent(doc, now)
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

// eventToContent maps one raw event document to the unified content shape.
// The typed crawl timestamp wins; otherwise the string start/end dates are
// parsed, and anything unparsable resolves to now so the item is not
// accidentally excluded from recency windows.
func eventToContent(doc models.EventDoc, now time.Time) models.ContentItem {
	published := doc.Date
	if published.IsZero() {
		published = models.ResolveDate(now, doc.StartAt, doc.EndAt)
	}

	return models.ContentItem{
		ID:             doc.ID,
		Title:          models.CleanText(doc.Title),
		Summary:        models.CleanText(doc.Summary),
		PublishedAt:    published,
		SourceURL:      doc.SourceURL,
		PosterImageURL: doc.PosterImageURL,
		Tags:           doc.Tags,
		Source:         "event",
	}
}
