package driver

import (
	"context"
	"errors"
	"fmt"

	"story-pipeline/domain"

	"github.com/jackc/pgx/v5"
)

const sourceColumns = `id, name, COALESCE(url, ''), COALESCE(logo_url, ''), COALESCE(language, ''),
	COALESCE(reliability_score, 0.5), created_at`

func scanSource(row pgx.Row) (*domain.Source, error) {
	var s domain.Source
	if err := row.Scan(&s.ID, &s.Name, &s.URL, &s.LogoURL, &s.Language, &s.ReliabilityScore, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func findSource(ctx context.Context, db PgxIface, where string, arg any) (*domain.Source, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	query := `SELECT ` + sourceColumns + ` FROM sources WHERE ` + where + ` LIMIT 1`
	s, err := scanSource(db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find source: %w", err)
	}
	return s, nil
}

// FindSourceByName matches the exact source name.
func FindSourceByName(ctx context.Context, db PgxIface, name string) (*domain.Source, error) {
	return findSource(ctx, db, "name = $1", name)
}

// FindSourceByURL matches the source homepage URL.
func FindSourceByURL(ctx context.Context, db PgxIface, url string) (*domain.Source, error) {
	return findSource(ctx, db, "url = $1", url)
}

// InsertSource stores s and fills its ID and CreatedAt.
func InsertSource(ctx context.Context, db PgxIface, s *domain.Source) error {
	if db == nil {
		return errors.New("database connection is nil")
	}

	query := `
		INSERT INTO sources (name, url, logo_url, language, reliability_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := db.QueryRow(ctx, query, s.Name, nullIfEmpty(s.URL), nullIfEmpty(s.LogoURL), nullIfEmpty(s.Language), s.ReliabilityScore).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
