package driver

import (
	"context"
	"errors"
	"fmt"

	"story-pipeline/domain"
)

// ListTopics returns every curated topic.
func ListTopics(ctx context.Context, db PgxIface) ([]domain.Topic, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	rows, err := db.Query(ctx, `SELECT id, slug, COALESCE(name_ar, ''), COALESCE(name_en, '') FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.Slug, &t.NameAr, &t.NameEn); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return topics, nil
}
