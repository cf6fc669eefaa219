package driver

import (
	"context"
	"testing"
	"time"

	"story-pipeline/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sourceColumnNames = []string{"id", "name", "url", "logo_url", "language", "reliability_score", "created_at"}

func TestFindSource(t *testing.T) {
	id := uuid.New()
	created := time.Now()

	t.Run("by name", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM sources WHERE name = \$1`).
			WithArgs("Example News").
			WillReturnRows(pgxmock.NewRows(sourceColumnNames).
				AddRow(id, "Example News", "https://news.example.com", "", "ar", 0.8, created))

		s, err := FindSourceByName(context.Background(), mock, "Example News")
		require.NoError(t, err)
		assert.Equal(t, id, s.ID)
		assert.InDelta(t, 0.8, s.ReliabilityScore, 1e-9)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by url not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM sources WHERE url = \$1`).
			WithArgs("https://missing.example.com").
			WillReturnRows(pgxmock.NewRows(sourceColumnNames))

		_, err = FindSourceByURL(context.Background(), mock, "https://missing.example.com")
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})
}

func TestInsertSource(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	created := time.Now()
	url := "https://news.example.com"
	lang := "en"

	mock.ExpectQuery("INSERT INTO sources").
		WithArgs("Example News", &url, (*string)(nil), &lang, domain.DefaultSourceReliability).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, created))

	s := &domain.Source{Name: "Example News", URL: url, Language: lang, ReliabilityScore: domain.DefaultSourceReliability}
	require.NoError(t, InsertSource(context.Background(), mock, s))
	assert.Equal(t, id, s.ID)
	assert.Equal(t, created, s.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
