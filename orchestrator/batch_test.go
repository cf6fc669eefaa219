package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"story-pipeline/config"
	"story-pipeline/domain"
	"story-pipeline/orchestrator"
	"story-pipeline/service"
	"story-pipeline/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPolicy = domain.BreakerPolicy{FailureThreshold: 3, Cooldown: 30 * time.Minute}

type pipelineMocks struct {
	articles  *mocks.MockRawArticleRepository
	extractor *mocks.MockContentExtractor
	enricher  *mocks.MockEnricher
	resolver  *mocks.MockSourceTopicResolver
	publisher *mocks.MockStoryPublisher
	breaker   *mocks.MockBreakerController
	retries   *mocks.MockRetryPlanner
}

func newPipeline(t *testing.T) (*orchestrator.BatchPipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		articles:  mocks.NewMockRawArticleRepository(ctrl),
		extractor: mocks.NewMockContentExtractor(ctrl),
		enricher:  mocks.NewMockEnricher(ctrl),
		resolver:  mocks.NewMockSourceTopicResolver(ctrl),
		publisher: mocks.NewMockStoryPublisher(ctrl),
		breaker:   mocks.NewMockBreakerController(ctrl),
		retries:   mocks.NewMockRetryPlanner(ctrl),
	}
	m.breaker.EXPECT().Policy().Return(testPolicy).AnyTimes()

	p := orchestrator.NewBatchPipeline(orchestrator.Dependencies{
		Articles:  m.articles,
		Extractor: m.extractor,
		Enricher:  m.enricher,
		Resolver:  m.resolver,
		Publisher: m.publisher,
		Breaker:   m.breaker,
		Retries:   m.retries,
	}, config.PipelineConfig{BatchSize: config.MaxBatchSize, MaxRetries: domain.DefaultMaxRetries}, discardLogger())
	return p, m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func claimed(articles ...*domain.RawArticle) func(m pipelineMocks) {
	return func(m pipelineMocks) {
		m.breaker.EXPECT().Load(gomock.Any()).Return(domain.ClosedBreakerState())
		m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)
		m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), domain.DefaultMaxRetries, gomock.Any()).Return(articles, nil)
	}
}

func rawArticle() *domain.RawArticle {
	return &domain.RawArticle{
		ID:          uuid.New(),
		OriginalURL: "https://gazette.example.com/" + uuid.NewString(),
		Title:       "Council approves plan",
		Status:      domain.RawArticleStatusProcessing,
		Feed:        domain.FeedInfo{ID: uuid.New(), Name: "Daily Gazette", Language: "en"},
	}
}

func breakerWith(failures int) gomock.Matcher {
	return gomock.Cond(func(s *domain.CircuitBreakerState) bool {
		return s.FailureCount == failures
	})
}

func TestBatchPipeline_ClampLimit(t *testing.T) {
	tests := map[string]struct {
		requested int
		want      int
	}{
		"zero uses configured size": {0, 20},
		"negative":                  {-3, 20},
		"within range":              {5, 5},
		"at maximum":                {20, 20},
		"above maximum":             {50, 20},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, m := newPipeline(t)
			m.breaker.EXPECT().Load(gomock.Any()).Return(domain.ClosedBreakerState())
			m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)
			m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), domain.DefaultMaxRetries, tc.want).Return(nil, nil)

			report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{Limit: tc.requested})
			require.NoError(t, err)
			assert.Zero(t, report.Summary.TotalProcessed)
			assert.Equal(t, tc.want, p.ClampLimit(tc.requested))
		})
	}
}

func TestBatchPipeline_BreakerOpen(t *testing.T) {
	p, m := newPipeline(t)
	until := time.Now().Add(20 * time.Minute)
	m.breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{IsOpen: true, FailureCount: 3, CooldownUntil: &until})
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(2), nil)

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})

	assert.Nil(t, report)
	var open *domain.CircuitOpenError
	require.True(t, errors.As(err, &open))
	assert.Equal(t, 3, open.FailureCount)
	require.NotNil(t, open.CooldownUntil)
	assert.Equal(t, until, *open.CooldownUntil)
}

func TestBatchPipeline_JustResetIsPersisted(t *testing.T) {
	p, m := newPipeline(t)
	past := time.Now().Add(-time.Minute)
	m.breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{IsOpen: true, FailureCount: 3, CooldownUntil: &past})
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)
	m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.breaker.EXPECT().Persist(gomock.Any(), gomock.Cond(func(s *domain.CircuitBreakerState) bool {
		return !s.IsOpen && s.FailureCount == 0 && s.CooldownUntil == nil
	})).Times(1)

	_, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)
}

func TestBatchPipeline_ClaimFailureRecordsBreakerFailure(t *testing.T) {
	p, m := newPipeline(t)
	m.breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{FailureCount: 1})
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), errors.New("pool closed"))
	m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("pool closed"))
	m.breaker.EXPECT().Persist(gomock.Any(), breakerWith(2))

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "failed to claim raw articles")
}

func TestBatchPipeline_Rejections(t *testing.T) {
	tests := map[string]struct {
		result  domain.ExtractionResult
		err     error
		wantMsg string
	}{
		"content too short": {
			result:  domain.ExtractionResult{Method: domain.ExtractionMethodNone},
			wantMsg: "shorter than 200",
		},
		"page gone": {
			result:  domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed},
			err:     &domain.FetchError{URL: "https://gazette.example.com/x", StatusCode: 404},
			wantMsg: "status 404",
		},
		"url refused": {
			result:  domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed},
			err:     domain.ErrInvalidURL,
			wantMsg: "URL rejected",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p, m := newPipeline(t)
			a := rawArticle()
			claimed(a)(m)
			m.extractor.EXPECT().Extract(gomock.Any(), a.OriginalURL).Return(tc.result, tc.err)
			m.articles.EXPECT().Transition(gomock.Any(), a.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusRejected,
				gomock.Cond(func(u domain.StatusUpdate) bool {
					return u.ErrorMessage != nil && strings.Contains(*u.ErrorMessage, tc.wantMsg) && u.RetryCount == nil
				})).Return(nil)

			report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
			require.NoError(t, err)

			assert.Equal(t, 1, report.Summary.Rejected)
			assert.Zero(t, report.Summary.Failed)
			assert.Equal(t, orchestrator.ItemStatusRejected, report.Results[0].Status)
			assert.Equal(t, tc.result.Method, report.Results[0].ExtractionMethod)
		})
	}
}

func TestBatchPipeline_RetryableFetchSchedulesRetry(t *testing.T) {
	p, m := newPipeline(t)
	a := rawArticle()
	a.RetryCount = 1
	claimed(a)(m)

	after := time.Now().Add(4 * time.Minute)
	decision := service.RetryDecision{Status: domain.RawArticleStatusPending, RetryCount: 2, RetryAfter: &after, ErrorMessage: "x"}
	m.extractor.EXPECT().Extract(gomock.Any(), a.OriginalURL).
		Return(domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed}, &domain.FetchError{URL: a.OriginalURL, StatusCode: 503, Retryable: true})
	m.retries.EXPECT().Plan(1, gomock.Any()).Return(decision)
	m.retries.EXPECT().Apply(gomock.Any(), a, decision).Return(nil)
	m.breaker.EXPECT().Persist(gomock.Any(), breakerWith(1))

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, orchestrator.ItemStatusRetryScheduled, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Error, "status 503")
}

func TestBatchPipeline_StoredContentAndDuplicate(t *testing.T) {
	p, m := newPipeline(t)
	a := rawArticle()
	stored := strings.Repeat("Stored article text. ", 15)
	quality := 0.6
	a.Content, a.ContentQuality = &stored, &quality
	claimed(a)(m)

	source := &domain.Source{ID: uuid.New(), ReliabilityScore: 0.5}
	storyID := uuid.New()
	m.resolver.EXPECT().ResolveSource(gomock.Any(), a.Feed).Return(source, nil)
	m.publisher.EXPECT().FindExisting(gomock.Any(), source.ID, a.OriginalURL).Return(storyID, true, nil)
	m.publisher.EXPECT().Link(gomock.Any(), a, storyID).Return(nil)

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.SkippedDuplicates)
	assert.Zero(t, report.Summary.TotalCostUSD)
	res := report.Results[0]
	assert.Equal(t, orchestrator.ItemStatusDuplicate, res.Status)
	assert.Equal(t, domain.ExtractionMethodCached, res.ExtractionMethod)
	require.NotNil(t, res.StoryID)
	assert.Equal(t, storyID, *res.StoryID)
}

func TestBatchPipeline_PanicIsolatedToItem(t *testing.T) {
	p, m := newPipeline(t)
	first, second := rawArticle(), rawArticle()
	stored := strings.Repeat("Stored article text. ", 15)
	first.Content, second.Content = &stored, &stored
	claimed(first, second)(m)

	source := &domain.Source{ID: uuid.New()}
	existing := uuid.New()
	gomock.InOrder(
		m.resolver.EXPECT().ResolveSource(gomock.Any(), first.Feed).DoAndReturn(func(context.Context, domain.FeedInfo) (*domain.Source, error) {
			panic("nil map")
		}),
		m.resolver.EXPECT().ResolveSource(gomock.Any(), second.Feed).Return(source, nil),
	)
	m.retries.EXPECT().Plan(0, gomock.Any()).Return(service.RetryDecision{Status: domain.RawArticleStatusPending, RetryCount: 1})
	m.retries.EXPECT().Apply(gomock.Any(), first, gomock.Any()).Return(nil)
	m.publisher.EXPECT().FindExisting(gomock.Any(), source.ID, second.OriginalURL).Return(existing, true, nil)
	m.publisher.EXPECT().Link(gomock.Any(), second, existing).Return(nil)
	m.breaker.EXPECT().Persist(gomock.Any(), breakerWith(1))

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalProcessed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.SkippedDuplicates)
	assert.Contains(t, report.Results[0].Error, "panic")
}

func TestBatchPipeline_EnrichmentFields(t *testing.T) {
	p, m := newPipeline(t)
	a := rawArticle()
	a.Feed.Language = ""
	a.TopicIDs = []uuid.UUID{uuid.New()}
	content := strings.Repeat("Fresh article text. ", 15)
	claimed(a)(m)

	source := &domain.Source{ID: uuid.New(), ReliabilityScore: 0.9, Language: "ar"}
	enrichment := &domain.EnrichmentResult{QualityScore: 0.9, Topics: []string{"economy"}, CostUSD: 0.012, Model: "premium-model"}
	topicIDs := []uuid.UUID{a.TopicIDs[0], uuid.New()}
	storyID := uuid.New()

	m.extractor.EXPECT().Extract(gomock.Any(), a.OriginalURL).
		Return(domain.ExtractionResult{Content: &content, Method: domain.ExtractionMethodReadability, Quality: 0.65, Length: 300}, nil)
	m.articles.EXPECT().SaveContent(gomock.Any(), a.ID, content, 0.65).Return(errors.New("ignored"))
	m.resolver.EXPECT().ResolveSource(gomock.Any(), a.Feed).Return(source, nil)
	m.publisher.EXPECT().FindExisting(gomock.Any(), source.ID, a.OriginalURL).Return(uuid.Nil, false, nil)
	catalog := domain.TopicCatalog{{ID: uuid.New(), Slug: "economy"}, {ID: uuid.New(), Slug: "general"}}
	m.resolver.EXPECT().Topics(gomock.Any()).Return(catalog, nil)
	m.enricher.EXPECT().Enrich(gomock.Any(), domain.EnrichmentInput{
		Title:          a.Title,
		Content:        content,
		SourceLanguage: "ar",
		TopicSlugs:     []string{"economy", "general"},
		Reliability:    0.9,
	}).Return(enrichment, nil)
	m.resolver.EXPECT().ResolveTopics(gomock.Any(), catalog, a.TopicIDs, []string{"economy"}).Return(topicIDs, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), service.PublishInput{
		Article:        a,
		Source:         source,
		Enrichment:     enrichment,
		Content:        content,
		TopicIDs:       topicIDs,
		ContentQuality: 0.65,
	}).Return(&service.PublishResult{StoryID: storyID}, nil)

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Successful)
	assert.InDelta(t, 0.012, report.Summary.TotalCostUSD, 1e-9)
	res := report.Results[0]
	assert.Equal(t, orchestrator.ItemStatusPublished, res.Status)
	assert.Equal(t, "premium-model", res.Model)
	assert.Equal(t, domain.ExtractionMethodReadability, res.ExtractionMethod)
}

func TestBatchPipeline_RejectionsDoNotResetFailureStreak(t *testing.T) {
	p, m := newPipeline(t)
	short, first, second := rawArticle(), rawArticle(), rawArticle()
	m.breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{FailureCount: 2})
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)
	m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.RawArticle{short, first, second}, nil)

	m.extractor.EXPECT().Extract(gomock.Any(), short.OriginalURL).Return(domain.ExtractionResult{Method: domain.ExtractionMethodNone}, nil)
	m.articles.EXPECT().Transition(gomock.Any(), short.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusRejected, gomock.Any()).Return(nil)
	for _, a := range []*domain.RawArticle{first, second} {
		m.extractor.EXPECT().Extract(gomock.Any(), a.OriginalURL).
			Return(domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed}, &domain.FetchError{URL: a.OriginalURL, StatusCode: 502, Retryable: true})
	}
	m.retries.EXPECT().Plan(0, gomock.Any()).Return(service.RetryDecision{Status: domain.RawArticleStatusPending, RetryCount: 1}).Times(2)
	m.retries.EXPECT().Apply(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.breaker.EXPECT().Persist(gomock.Any(), gomock.Cond(func(s *domain.CircuitBreakerState) bool {
		return s.IsOpen && s.FailureCount == 3 && s.CooldownUntil != nil
	}))

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)

	assert.Zero(t, report.Summary.Successful)
	assert.Equal(t, 1, report.Summary.Rejected)
	assert.Equal(t, 2, report.Summary.Failed)
}

func TestBatchPipeline_OnlyRejectionsLeaveBreakerAlone(t *testing.T) {
	p, m := newPipeline(t)
	a := rawArticle()
	m.breaker.EXPECT().Load(gomock.Any()).Return(&domain.CircuitBreakerState{FailureCount: 2})
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)
	m.articles.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.RawArticle{a}, nil)
	m.extractor.EXPECT().Extract(gomock.Any(), a.OriginalURL).Return(domain.ExtractionResult{Method: domain.ExtractionMethodNone}, nil)
	m.articles.EXPECT().Transition(gomock.Any(), a.ID, domain.RawArticleStatusProcessing, domain.RawArticleStatusRejected, gomock.Any()).Return(nil)
	m.breaker.EXPECT().Persist(gomock.Any(), gomock.Any()).Times(0)

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Rejected)
}

func TestBatchPipeline_CallerCancellationStopsBetweenItems(t *testing.T) {
	p, m := newPipeline(t)
	first, second := rawArticle(), rawArticle()
	claimed(first, second)(m)

	caller, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.extractor.EXPECT().Extract(gomock.Any(), first.OriginalURL).DoAndReturn(func(ctx context.Context, url string) (domain.ExtractionResult, error) {
		cancel()
		assert.NoError(t, ctx.Err())
		return domain.ExtractionResult{Method: domain.ExtractionMethodFetchFailed}, &domain.FetchError{URL: url, StatusCode: 503, Retryable: true}
	})
	decision := service.RetryDecision{Status: domain.RawArticleStatusPending, RetryCount: 1}
	m.retries.EXPECT().Plan(0, gomock.Any()).Return(decision)
	m.retries.EXPECT().Apply(gomock.Any(), first, decision).DoAndReturn(func(ctx context.Context, _ *domain.RawArticle, _ service.RetryDecision) error {
		assert.NoError(t, ctx.Err())
		return nil
	})
	m.breaker.EXPECT().Persist(gomock.Any(), breakerWith(1)).Do(func(ctx context.Context, _ *domain.CircuitBreakerState) {
		assert.NoError(t, ctx.Err())
	})

	report, err := p.RunBatch(caller, orchestrator.BatchRequest{})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, first.ID, report.Results[0].RawArticleID)
	assert.Equal(t, orchestrator.ItemStatusRetryScheduled, report.Results[0].Status)
}

func TestBatchPipeline_CancelledCallerClaimsNothing(t *testing.T) {
	p, m := newPipeline(t)
	m.breaker.EXPECT().Load(gomock.Any()).Return(domain.ClosedBreakerState())
	m.retries.EXPECT().ReclaimStuck(gomock.Any()).Return(int64(0), nil)

	caller, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := p.RunBatch(caller, orchestrator.BatchRequest{})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchPipeline_TopicCatalogLoadedOncePerBatch(t *testing.T) {
	p, m := newPipeline(t)
	first, second := rawArticle(), rawArticle()
	stored := strings.Repeat("Stored article text. ", 15)
	first.Content, second.Content = &stored, &stored
	claimed(first, second)(m)

	source := &domain.Source{ID: uuid.New(), ReliabilityScore: 0.5}
	catalog := domain.TopicCatalog{{ID: uuid.New(), Slug: "general"}}
	enrichment := &domain.EnrichmentResult{QualityScore: 0.8, Topics: []string{"general"}}

	m.resolver.EXPECT().ResolveSource(gomock.Any(), gomock.Any()).Return(source, nil).Times(2)
	m.publisher.EXPECT().FindExisting(gomock.Any(), source.ID, gomock.Any()).Return(uuid.Nil, false, nil).Times(2)
	m.resolver.EXPECT().Topics(gomock.Any()).Return(catalog, nil).Times(1)
	m.enricher.EXPECT().Enrich(gomock.Any(), gomock.Cond(func(in domain.EnrichmentInput) bool {
		return len(in.TopicSlugs) == 1 && in.TopicSlugs[0] == "general"
	})).Return(enrichment, nil).Times(2)
	m.resolver.EXPECT().ResolveTopics(gomock.Any(), catalog, gomock.Any(), []string{"general"}).Return([]uuid.UUID{catalog[0].ID}, nil).Times(2)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(&service.PublishResult{StoryID: uuid.New()}, nil).Times(2)

	report, err := p.RunBatch(context.Background(), orchestrator.BatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Successful)
}
