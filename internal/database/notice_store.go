package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/models"
)

// noticePreviewLen is the rune length of the summary built from a notice body.
const noticePreviewLen = 200

// NoticeStore reads the notices collection. Notices carry no reliable typed
// recency field, so the store serves a capped newest-first page and leaves
// window filtering to the caller.
type NoticeStore struct {
	col     *mongo.Collection
	timeout time.Duration
	logger  *logging.Logger
}

// NewNoticeStore creates a notice store backed by the given Mongo handle
func NewNoticeStore(m *Mongo, logger *logging.Logger) *NoticeStore {
	return &NoticeStore{
		col:     m.Collection(colNotices),
		timeout: m.timeout,
		logger:  logger,
	}
}

// FetchRecent returns up to limit notices, newest first by crawl insertion
// time, mapped into the unified content shape.
func (s *NoticeStore) FetchRecent(ctx context.Context, limit int) ([]models.ContentItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "firebase_created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("notice page query: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.NoticeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notice page: %w", err)
	}

	now := time.Now()
	items := make([]models.ContentItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, noticeToContent(doc, now))
	}
	return items, nil
}

// noticeToContent maps one raw notice document to the unified content shape:
// first crawled image becomes the poster, the markup-stripped body truncated
// to a preview becomes the summary, and the publish instant resolves through
// date, then crawled_at, then firebase_created_at, then now.
func noticeToContent(doc models.NoticeDoc, now time.Time) models.ContentItem {
	poster := ""
	if len(doc.ImageURLs) > 0 {
		poster = doc.ImageURLs[0]
	}

	body := models.CleanText(stripMarkup(doc.Content))

	return models.ContentItem{
		ID:             doc.ID,
		Title:          models.CleanText(doc.Title),
		Summary:        models.TruncateRunes(body, noticePreviewLen),
		PublishedAt:    models.ResolveDate(now, doc.Date, doc.CrawledAt, doc.FirebaseCreatedAt),
		SourceURL:      doc.URL,
		PosterImageURL: poster,
		Source:         "notice",
	}
}

// stripMarkup extracts the text of a crawled body that arrived as HTML.
// Plain-text bodies pass through untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
