package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"story-pipeline/config"
	"story-pipeline/domain"
	"story-pipeline/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletionClient struct {
	err      error
	text     string
	model    string
	requests []driver.CompletionRequest
	usage    domain.TokenUsage
}

func (c *stubCompletionClient) Complete(_ context.Context, req driver.CompletionRequest) (*domain.Completion, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return &domain.Completion{Text: c.text, Model: c.model, Usage: c.usage}, nil
}

func testAIConfig() config.AIConfig {
	return config.AIConfig{
		PremiumModel:    "premium-model",
		StandardModel:   "standard-model",
		PremiumPrice:    domain.TokenPrice{InputPerMillion: 3, OutputPerMillion: 15},
		StandardPrice:   domain.TokenPrice{InputPerMillion: 0.25, OutputPerMillion: 1.25},
		MaxContentChars: 50,
	}
}

func enrichmentJSON(quality float64) string {
	return fmt.Sprintf(`{
  "title_ar": "عنوان",
  "title_en": "Headline",
  "summary_ar": "ملخص الخبر.",
  "summary_en": "Summary of the story.",
  "why_it_matters_ar": "لماذا يهم.",
  "why_it_matters_en": "Why it matters.",
  "quality_score": %v,
  "topics": ["Politics", " economy "]
}`, quality)
}

func TestSelectModelTier(t *testing.T) {
	tests := map[string]struct {
		reliability float64
		want        domain.ModelTier
	}{
		"unknown source":      {0, domain.ModelTierStandard},
		"default reliability": {0.5, domain.ModelTierStandard},
		"exactly threshold":   {0.7, domain.ModelTierStandard},
		"just above":          {0.71, domain.ModelTierPremium},
		"fully trusted":       {1, domain.ModelTierPremium},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectModelTier(tc.reliability))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"plain json":           {`{"a":1}`, `{"a":1}`},
		"json fence":           {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":           {"```\n{\"a\":1}\n```", `{"a":1}`},
		"fence on same line":   {"```{\"a\":1}```", `{"a":1}`},
		"surrounding spaces":   {"  \n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		"no closing fence":     {"```json\n{\"a\":1}", `{"a":1}`},
		"inner backticks kept": {"{\"a\":\"`x`\"}", "{\"a\":\"`x`\"}"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFence(tc.input))
		})
	}
}

func TestParseEnrichmentResponse(t *testing.T) {
	t.Run("valid fenced response", func(t *testing.T) {
		result, err := ParseEnrichmentResponse("```json\n" + enrichmentJSON(0.8) + "\n```")
		require.NoError(t, err)

		assert.Equal(t, "Headline", result.TitleEn)
		assert.Equal(t, "ملخص الخبر.", result.SummaryAr)
		assert.Equal(t, "Why it matters.", result.WhyItMattersEn)
		assert.InDelta(t, 0.8, result.QualityScore, 1e-9)
		assert.Equal(t, []string{"politics", "economy"}, result.Topics)
	})

	t.Run("titles are optional", func(t *testing.T) {
		result, err := ParseEnrichmentResponse(`{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":0.5,"topics":[]}`)
		require.NoError(t, err)
		assert.Empty(t, result.TitleEn)
		assert.Empty(t, result.Topics)
	})

	tests := map[string]struct {
		input string
		field string
	}{
		"empty":                  {"", ""},
		"prose":                  {"Sorry, I cannot help with that.", ""},
		"missing summary_ar":     {`{"summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":0.5,"topics":[]}`, "summary_ar"},
		"blank summary_en":       {`{"summary_ar":"a","summary_en":"  ","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":0.5,"topics":[]}`, "summary_en"},
		"missing why_it_matters": {`{"summary_ar":"a","summary_en":"b","why_it_matters_en":"d","quality_score":0.5,"topics":[]}`, "why_it_matters_ar"},
		"missing quality":        {`{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","topics":[]}`, "quality_score"},
		"quality above one":      {`{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":1.2,"topics":[]}`, "quality_score"},
		"negative quality":       {`{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":-0.1,"topics":[]}`, "quality_score"},
		"missing topics":         {`{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":0.5}`, "topics"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEnrichmentResponse(tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidAIResponse))

			var verr *domain.ResponseValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestEnrichmentService_Enrich(t *testing.T) {
	input := domain.EnrichmentInput{
		Title:          "Original title",
		Content:        strings.Repeat("a", 80),
		SourceLanguage: "ar",
		TopicSlugs:     []string{"politics", "economy", "general"},
		Reliability:    0.9,
	}

	t.Run("premium tier for reliable source", func(t *testing.T) {
		client := &stubCompletionClient{
			text:  enrichmentJSON(0.8),
			usage: domain.TokenUsage{InputTokens: 1000, OutputTokens: 200},
		}
		svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

		result, err := svc.Enrich(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, client.requests, 1)
		req := client.requests[0]
		assert.Equal(t, "premium-model", req.Model)
		assert.Contains(t, req.UserPrompt, "Allowed topics: politics, economy, general")
		assert.Contains(t, req.UserPrompt, "Source language: ar")
		assert.Contains(t, req.UserPrompt, strings.Repeat("a", 50))
		assert.NotContains(t, req.UserPrompt, strings.Repeat("a", 51))

		assert.Equal(t, domain.ModelTierPremium, result.Tier)
		assert.Equal(t, "premium-model", result.Model)
		assert.InDelta(t, 0.003+0.003, result.CostUSD, 1e-9)
	})

	t.Run("standard tier at default reliability", func(t *testing.T) {
		client := &stubCompletionClient{text: enrichmentJSON(0.8), model: "standard-model-2026"}
		svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

		in := input
		in.Reliability = domain.DefaultSourceReliability
		result, err := svc.Enrich(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, "standard-model", client.requests[0].Model)
		assert.Equal(t, "standard-model-2026", result.Model)
		assert.Equal(t, domain.ModelTierStandard, result.Tier)
	})

	t.Run("missing titles fall back to the article title", func(t *testing.T) {
		client := &stubCompletionClient{text: `{"summary_ar":"a","summary_en":"b","why_it_matters_ar":"c","why_it_matters_en":"d","quality_score":0.9,"topics":["general"]}`}
		svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

		result, err := svc.Enrich(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "Original title", result.TitleEn)
	})

	t.Run("transport error is returned as is", func(t *testing.T) {
		upstream := &domain.UpstreamError{StatusCode: 503, Retryable: true}
		client := &stubCompletionClient{err: upstream}
		svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

		result, err := svc.Enrich(context.Background(), input)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrEnrichmentUnavailable)
	})

	t.Run("invalid response", func(t *testing.T) {
		client := &stubCompletionClient{text: "not json"}
		svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

		result, err := svc.Enrich(context.Background(), input)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidAIResponse)
	})
}

func TestEnrichmentService_QualityGate(t *testing.T) {
	tests := map[string]struct {
		quality    float64
		wantReject bool
	}{
		"at threshold":    {0.4, false},
		"below threshold": {0.399, true},
		"zero":            {0, true},
		"well above":      {0.95, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client := &stubCompletionClient{
				text:  enrichmentJSON(tc.quality),
				usage: domain.TokenUsage{InputTokens: 4000, OutputTokens: 400},
			}
			svc := NewEnrichmentService(client, testAIConfig(), domain.MinAIQualityScore, testLogger())

			result, err := svc.Enrich(context.Background(), domain.EnrichmentInput{Title: "t", Content: "c"})

			require.NotNil(t, result)
			assert.Greater(t, result.CostUSD, 0.0)
			if !tc.wantReject {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsLowQuality(err))
			var rej *domain.RejectionError
			assert.True(t, errors.As(err, &rej))
		})
	}
}
