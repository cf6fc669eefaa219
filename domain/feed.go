package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSourceReliability is assigned to lazily created sources.
const DefaultSourceReliability = 0.5

// DefaultTopicSlug is the topic every story falls back to.
const DefaultTopicSlug = "general"

// Source is the canonical publisher record.
type Source struct {
	CreatedAt        time.Time `db:"created_at"`
	Name             string    `db:"name"`
	URL              string    `db:"url"`
	LogoURL          string    `db:"logo_url"`
	Language         string    `db:"language"`
	ReliabilityScore float64   `db:"reliability_score"`
	ID               uuid.UUID `db:"id"`
}

// Topic is a curated classification bucket.
type Topic struct {
	Slug   string    `db:"slug"`
	NameAr string    `db:"name_ar"`
	NameEn string    `db:"name_en"`
	ID     uuid.UUID `db:"id"`
}

// TopicCatalog is the curated topic list as loaded for one batch.
type TopicCatalog []Topic

// Slugs lists the catalog slugs in catalog order.
func (c TopicCatalog) Slugs() []string {
	slugs := make([]string, 0, len(c))
	for _, t := range c {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

// BySlug indexes the catalog by slug.
func (c TopicCatalog) BySlug() map[string]uuid.UUID {
	index := make(map[string]uuid.UUID, len(c))
	for _, t := range c {
		index[t.Slug] = t.ID
	}
	return index
}
