package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RawArticleStatus is the processing state of a feed-fetched item.
type RawArticleStatus string

const (
	RawArticleStatusPending    RawArticleStatus = "pending"
	RawArticleStatusProcessing RawArticleStatus = "processing"
	RawArticleStatusProcessed  RawArticleStatus = "processed"
	RawArticleStatusRejected   RawArticleStatus = "rejected"
	RawArticleStatusFailed     RawArticleStatus = "failed"
)

// DefaultMaxRetries is the retry ceiling after which an item becomes failed.
const DefaultMaxRetries = 5

var allowedTransitions = map[RawArticleStatus]map[RawArticleStatus]bool{
	RawArticleStatusPending: {
		RawArticleStatusProcessing: true,
	},
	RawArticleStatusProcessing: {
		RawArticleStatusProcessed: true,
		RawArticleStatusRejected:  true,
		RawArticleStatusPending:   true,
		RawArticleStatusFailed:    true,
	},
}

// ParseRawArticleStatus converts a stored value into a RawArticleStatus.
func ParseRawArticleStatus(value string) (RawArticleStatus, error) {
	switch s := RawArticleStatus(value); s {
	case RawArticleStatusPending, RawArticleStatusProcessing, RawArticleStatusProcessed,
		RawArticleStatusRejected, RawArticleStatusFailed:
		return s, nil
	default:
		return "", fmt.Errorf("unknown raw article status %q", value)
	}
}

// IsTerminal reports whether no further pipeline transition is possible.
func (s RawArticleStatus) IsTerminal() bool {
	return s == RawArticleStatusProcessed || s == RawArticleStatusRejected || s == RawArticleStatusFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s RawArticleStatus) CanTransitionTo(next RawArticleStatus) bool {
	return allowedTransitions[s][next]
}

// ValidateTransition returns ErrInvalidTransition when from -> to is not allowed.
func ValidateTransition(from, to RawArticleStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// FeedInfo is the originating feed of a raw article, as joined at selection time.
type FeedInfo struct {
	ID         uuid.UUID `db:"feed_id"`
	Name       string    `db:"feed_name"`
	URL        string    `db:"feed_url"`
	WebsiteURL string    `db:"feed_website_url"`
	LogoURL    string    `db:"feed_logo_url"`
	Language   string    `db:"feed_language"`
}

// RawArticle is one feed entry awaiting or undergoing enrichment.
type RawArticle struct {
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
	Feed           FeedInfo         `db:"-"`
	Content        *string          `db:"content"`
	ContentQuality *float64         `db:"content_quality"`
	ImageURL       *string          `db:"image_url"`
	PublishedAt    *time.Time       `db:"published_at"`
	RetryAfter     *time.Time       `db:"retry_after"`
	ErrorMessage   *string          `db:"error_message"`
	StoryID        *uuid.UUID       `db:"story_id"`
	ProcessedAt    *time.Time       `db:"processed_at"`
	Status         RawArticleStatus `db:"status"`
	OriginalURL    string           `db:"original_url"`
	Title          string           `db:"title"`
	Description    string           `db:"description"`
	TopicIDs       []uuid.UUID      `db:"topic_ids"`
	RetryCount     int              `db:"retry_count"`
	ID             uuid.UUID        `db:"id"`
}

// StatusUpdate carries the columns written together with a status transition.
type StatusUpdate struct {
	RetryAfter   *time.Time
	ErrorMessage *string
	StoryID      *uuid.UUID
	RetryCount   *int
}

// Story is the publishable, client-visible unit.
type Story struct {
	CreatedAt           time.Time   `db:"created_at"`
	PublishedAt         *time.Time  `db:"published_at"`
	ImageURL            *string     `db:"image_url"`
	TitleAr             string      `db:"title_ar"`
	TitleEn             string      `db:"title_en"`
	SummaryAr           string      `db:"summary_ar"`
	SummaryEn           string      `db:"summary_en"`
	WhyItMattersAr      string      `db:"why_it_matters_ar"`
	WhyItMattersEn      string      `db:"why_it_matters_en"`
	FullContent         string      `db:"full_content"`
	OriginalURL         string      `db:"original_url"`
	AIModel             string      `db:"ai_model"`
	TopicIDs            []uuid.UUID `db:"topic_ids"`
	AIQualityScore      float64     `db:"ai_quality_score"`
	ContentQualityScore float64     `db:"content_quality_score"`
	ID                  uuid.UUID   `db:"id"`
	SourceID            uuid.UUID   `db:"source_id"`
	RawArticleID        uuid.UUID   `db:"raw_article_id"`
	IsApproved          bool        `db:"is_approved"`
}
