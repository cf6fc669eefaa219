package domain

// ModelTier is the cost/quality class of the enrichment model.
type ModelTier string

const (
	ModelTierPremium  ModelTier = "premium"
	ModelTierStandard ModelTier = "standard"
)

// PremiumReliabilityThreshold is the reliability above which the premium tier is used.
const PremiumReliabilityThreshold = 0.7

// MinAIQualityScore is the lowest accepted AI quality score.
const MinAIQualityScore = 0.4

// TokenPrice is the USD price per million tokens for one tier.
type TokenPrice struct {
	InputPerMillion  float64 `json:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million"`
}

// TokenUsage is the token accounting reported by the enrichment API.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// CostUSD prices usage against p.
func (p TokenPrice) CostUSD(usage TokenUsage) float64 {
	return float64(usage.InputTokens)/1_000_000*p.InputPerMillion +
		float64(usage.OutputTokens)/1_000_000*p.OutputPerMillion
}

// EnrichmentInput is what the enrichment stage needs about an item.
type EnrichmentInput struct {
	Title          string
	Content        string
	SourceLanguage string
	TopicSlugs     []string
	Reliability    float64
}

// EnrichmentResult is a validated AI response plus accounting.
type EnrichmentResult struct {
	TitleAr        string     `json:"title_ar"`
	TitleEn        string     `json:"title_en"`
	SummaryAr      string     `json:"summary_ar"`
	SummaryEn      string     `json:"summary_en"`
	WhyItMattersAr string     `json:"why_it_matters_ar"`
	WhyItMattersEn string     `json:"why_it_matters_en"`
	Model          string     `json:"model"`
	Tier           ModelTier  `json:"tier"`
	Topics         []string   `json:"topics"`
	Usage          TokenUsage `json:"usage"`
	QualityScore   float64    `json:"quality_score"`
	CostUSD        float64    `json:"cost_usd"`
}

// Completion is the raw text returned by the enrichment API.
type Completion struct {
	Text  string
	Model string
	Usage TokenUsage
}
