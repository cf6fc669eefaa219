package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"story-pipeline/config"
	"story-pipeline/domain"
	"story-pipeline/driver"
	"story-pipeline/metrics"
)

const enrichmentSystemPrompt = `You are a bilingual (Arabic and English) news editor.
Read the article and respond with a single JSON object and nothing else:
{
  "title_ar": string,
  "title_en": string,
  "summary_ar": string,
  "summary_en": string,
  "why_it_matters_ar": string,
  "why_it_matters_en": string,
  "quality_score": number between 0 and 1,
  "topics": array of topic slugs
}
Summaries are 2 to 4 sentences. "why_it_matters" is one sentence for a general reader.
quality_score rates how complete, factual and newsworthy the article is; use a low score
for teasers, advertisements, listings or truncated text.
Only use topic slugs from the allowed list.`

// SelectModelTier returns premium only for sources strictly more reliable than 0.7.
func SelectModelTier(reliability float64) domain.ModelTier {
	if reliability > domain.PremiumReliabilityThreshold {
		return domain.ModelTierPremium
	}
	return domain.ModelTierStandard
}

type enrichmentService struct {
	client     CompletionClient
	logger     *slog.Logger
	cfg        config.AIConfig
	minQuality float64
}

// NewEnrichmentService creates the enrichment stage.
func NewEnrichmentService(client CompletionClient, cfg config.AIConfig, minQuality float64, logger *slog.Logger) Enricher {
	return &enrichmentService{
		client:     client,
		cfg:        cfg,
		minQuality: minQuality,
		logger:     logger,
	}
}

// Enrich returns the validated result. Below the quality floor the result is returned
// together with a *domain.RejectionError wrapping domain.ErrLowQuality so callers still see
// the spend.
func (s *enrichmentService) Enrich(ctx context.Context, input domain.EnrichmentInput) (*domain.EnrichmentResult, error) {
	tier := SelectModelTier(input.Reliability)
	model, price := s.cfg.StandardModel, s.cfg.StandardPrice
	if tier == domain.ModelTierPremium {
		model, price = s.cfg.PremiumModel, s.cfg.PremiumPrice
	}

	start := time.Now()
	completion, err := s.client.Complete(ctx, driver.CompletionRequest{
		Model:        model,
		SystemPrompt: enrichmentSystemPrompt,
		UserPrompt:   buildUserPrompt(input, s.cfg.MaxContentChars),
	})
	if err != nil {
		metrics.RecordEnrichment(string(tier), "error", time.Since(start), 0, 0, 0)
		return nil, err
	}

	result, err := ParseEnrichmentResponse(completion.Text)
	cost := price.CostUSD(completion.Usage)
	if err != nil {
		metrics.RecordEnrichment(string(tier), "invalid", time.Since(start),
			completion.Usage.InputTokens, completion.Usage.OutputTokens, cost)
		s.logger.WarnContext(ctx, "enrichment response rejected",
			"model", model,
			"error", err,
			"cost_usd", cost)
		return nil, err
	}

	result.Model = completion.Model
	if result.Model == "" {
		result.Model = model
	}
	result.Tier = tier
	result.Usage = completion.Usage
	result.CostUSD = cost
	if result.TitleEn == "" && result.TitleAr == "" {
		result.TitleEn = input.Title
	}

	metrics.RecordEnrichment(string(tier), "success", time.Since(start),
		completion.Usage.InputTokens, completion.Usage.OutputTokens, cost)
	s.logger.InfoContext(ctx, "article enriched",
		"model", result.Model,
		"tier", tier,
		"quality_score", result.QualityScore,
		"topics", result.Topics,
		"input_tokens", completion.Usage.InputTokens,
		"output_tokens", completion.Usage.OutputTokens,
		"cost_usd", cost,
		"duration_ms", time.Since(start).Milliseconds())

	if result.QualityScore < s.minQuality {
		return result, domain.Reject(domain.ErrLowQuality,
			"AI quality score %.2f below threshold %.2f", result.QualityScore, s.minQuality)
	}
	return result, nil
}

func buildUserPrompt(input domain.EnrichmentInput, maxChars int) string {
	content := input.Content
	if runes := []rune(content); maxChars > 0 && len(runes) > maxChars {
		content = string(runes[:maxChars])
	}

	language := input.SourceLanguage
	if language == "" {
		language = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Source language: %s\n", language)
	fmt.Fprintf(&b, "Allowed topics: %s\n", strings.Join(input.TopicSlugs, ", "))
	fmt.Fprintf(&b, "Title: %s\n\n", input.Title)
	b.WriteString("Article:\n")
	b.WriteString(content)
	return b.String()
}

// StripCodeFence removes one surrounding markdown code fence, with or without a language tag.
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}

	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		if tag := strings.TrimSpace(t[:nl]); !strings.ContainsAny(tag, "{[") {
			t = t[nl+1:]
		}
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

type enrichmentPayload struct {
	TitleAr        *string   `json:"title_ar"`
	TitleEn        *string   `json:"title_en"`
	SummaryAr      *string   `json:"summary_ar"`
	SummaryEn      *string   `json:"summary_en"`
	WhyItMattersAr *string   `json:"why_it_matters_ar"`
	WhyItMattersEn *string   `json:"why_it_matters_en"`
	QualityScore   *float64  `json:"quality_score"`
	Topics         *[]string `json:"topics"`
}

// ParseEnrichmentResponse strips a code fence and validates every required field.
func ParseEnrichmentResponse(text string) (*domain.EnrichmentResult, error) {
	body := StripCodeFence(text)
	if body == "" {
		return nil, &domain.ResponseValidationError{Reason: "empty response"}
	}

	var p enrichmentPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, &domain.ResponseValidationError{Reason: "response is not a JSON object", Cause: err}
	}

	required := []struct {
		name  string
		value *string
	}{
		{"summary_ar", p.SummaryAr},
		{"summary_en", p.SummaryEn},
		{"why_it_matters_ar", p.WhyItMattersAr},
		{"why_it_matters_en", p.WhyItMattersEn},
	}
	for _, f := range required {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			return nil, &domain.ResponseValidationError{Field: f.name, Reason: "is missing or empty"}
		}
	}

	if p.QualityScore == nil {
		return nil, &domain.ResponseValidationError{Field: "quality_score", Reason: "is missing"}
	}
	if q := *p.QualityScore; q < 0 || q > 1 {
		return nil, &domain.ResponseValidationError{Field: "quality_score", Reason: fmt.Sprintf("%v is outside [0,1]", q)}
	}
	if p.Topics == nil {
		return nil, &domain.ResponseValidationError{Field: "topics", Reason: "is missing"}
	}

	topics := make([]string, 0, len(*p.Topics))
	for _, slug := range *p.Topics {
		if slug = strings.ToLower(strings.TrimSpace(slug)); slug != "" {
			topics = append(topics, slug)
		}
	}

	return &domain.EnrichmentResult{
		TitleAr:        strings.TrimSpace(deref(p.TitleAr)),
		TitleEn:        strings.TrimSpace(deref(p.TitleEn)),
		SummaryAr:      strings.TrimSpace(*p.SummaryAr),
		SummaryEn:      strings.TrimSpace(*p.SummaryEn),
		WhyItMattersAr: strings.TrimSpace(*p.WhyItMattersAr),
		WhyItMattersEn: strings.TrimSpace(*p.WhyItMattersEn),
		QualityScore:   *p.QualityScore,
		Topics:         topics,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsLowQuality reports whether err is the terminal quality gate rejection.
func IsLowQuality(err error) bool {
	return errors.Is(err, domain.ErrLowQuality)
}
