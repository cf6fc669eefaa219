package repository

import (
	"context"
	"errors"
	"log/slog"

	"story-pipeline/domain"
	"story-pipeline/driver"
)

type sourceRepository struct {
	db     driver.PgxIface
	logger *slog.Logger
}

// NewSourceRepository creates a source repository.
func NewSourceRepository(db driver.PgxIface, logger *slog.Logger) SourceRepository {
	return &sourceRepository{db: db, logger: logger}
}

func (r *sourceRepository) FindByName(ctx context.Context, name string) (*domain.Source, error) {
	s, err := driver.FindSourceByName(ctx, r.db, name)
	if err != nil && !errors.Is(err, domain.ErrSourceNotFound) {
		r.logger.ErrorContext(ctx, "failed to find source by name", "name", name, "error", err)
	}
	return s, err
}

func (r *sourceRepository) FindByURL(ctx context.Context, url string) (*domain.Source, error) {
	if url == "" {
		return nil, domain.ErrSourceNotFound
	}
	s, err := driver.FindSourceByURL(ctx, r.db, url)
	if err != nil && !errors.Is(err, domain.ErrSourceNotFound) {
		r.logger.ErrorContext(ctx, "failed to find source by url", "url", url, "error", err)
	}
	return s, err
}

func (r *sourceRepository) Create(ctx context.Context, source *domain.Source) error {
	if err := driver.InsertSource(ctx, r.db, source); err != nil {
		r.logger.ErrorContext(ctx, "failed to create source", "name", source.Name, "error", err)
		return err
	}
	r.logger.InfoContext(ctx, "source created", "source_id", source.ID, "name", source.Name)
	return nil
}
