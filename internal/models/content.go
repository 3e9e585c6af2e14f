package models

import "time"

// ContentItem is the unified view of one piece of content, regardless of
// which source collection it came from. Items are built per request and are
// never persisted in this shape.
type ContentItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary,omitempty"`
	PublishedAt    time.Time `json:"publishedAt"`
	SourceURL      string    `json:"sourceUrl,omitempty"`
	PosterImageURL string    `json:"posterImageUrl,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Source         string    `json:"source"`
}

// ClickCounter is the persisted per-content click counter document.
// The document key is the canonical id from hotkey.Normalize; exactly one
// counter exists per logical content item.
type ClickCounter struct {
	ID             string    `bson:"_id" json:"id"`
	Count          int       `bson:"count" json:"count"`
	Title          string    `bson:"title,omitempty" json:"title,omitempty"`
	SourceURL      string    `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	PosterImageURL string    `bson:"posterImageUrl,omitempty" json:"posterImageUrl,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ClickMeta carries the optional display metadata supplied with a click.
// Empty fields mean "not supplied"; stored values win over absent ones.
type ClickMeta struct {
	Title          string `json:"title,omitempty"`
	SourceURL      string `json:"sourceUrl,omitempty"`
	PosterImageURL string `json:"posterImageUrl,omitempty"`
}

// RankedItem is one row of a trending result. Engagement is nil when no
// counter document was found for the item, which is distinct from a counter
// that exists with a count of zero.
type RankedItem struct {
	Content    ContentItem `json:"content"`
	Engagement *int        `json:"engagement"`
}

// OrgRef is the embedded organization reference on an event document.
type OrgRef struct {
	ID      string `bson:"id,omitempty" json:"id,omitempty"`
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	LogoURL string `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
}

// EventDoc is the schema-on-read shape of one document in the events
// collection. The crawler owns the write side; absent fields are tolerated.
type EventDoc struct {
	ID             string    `bson:"_id"`
	Title          string    `bson:"title"`
	Summary        string    `bson:"summary,omitempty"`
	StartAt        string    `bson:"startAt,omitempty"`
	EndAt          string    `bson:"endAt,omitempty"`
	Location       string    `bson:"location,omitempty"`
	Tags           []string  `bson:"tags,omitempty"`
	Org            OrgRef    `bson:"org,omitempty"`
	SourceURL      string    `bson:"sourceUrl,omitempty"`
	PosterImageURL string    `bson:"posterImageUrl,omitempty"`
	Date           time.Time `bson:"date,omitempty"`
}

// NoticeDoc is the schema-on-read shape of one document in the notices
// collection. All three date fields are strings written by the crawler in
// whatever format the origin site used.
type NoticeDoc struct {
	ID                string   `bson:"_id"`
	Title             string   `bson:"title"`
	Content           string   `bson:"content,omitempty"`
	Author            string   `bson:"author,omitempty"`
	Date              string   `bson:"date,omitempty"`
	CrawledAt         string   `bson:"crawled_at,omitempty"`
	FirebaseCreatedAt string   `bson:"firebase_created_at,omitempty"`
	ImageURLs         []string `bson:"image_urls,omitempty"`
	URL               string   `bson:"url,omitempty"`
}
