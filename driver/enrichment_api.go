package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"story-pipeline/config"
	"story-pipeline/domain"
	apperrors "story-pipeline/utils/errors"
)

const maxErrorBodyBytes = 512

// CompletionRequest is one system+user prompt pair sent to the chat model.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionPayload struct {
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// EnrichmentAPIClient talks to an OpenAI-compatible chat completions endpoint.
type EnrichmentAPIClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	cfg        config.AIConfig
}

func NewEnrichmentAPIClient(cfg config.AIConfig, httpClient *http.Client, logger *slog.Logger) *EnrichmentAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &EnrichmentAPIClient{
		httpClient: httpClient,
		logger:     logger,
		cfg:        cfg,
	}
}

// Complete sends the prompt and returns the raw model text. Transport and status failures are
// *domain.UpstreamError; an unusable envelope is *domain.ResponseValidationError.
func (c *EnrichmentAPIClient) Complete(ctx context.Context, req CompletionRequest) (*domain.Completion, error) {
	payload := chatCompletionPayload{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxOutputTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.DebugContext(ctx, "calling enrichment API",
		"model", req.Model,
		"timeout", c.cfg.Timeout)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.ErrorContext(ctx, "enrichment API request failed",
			"model", req.Model,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, &domain.UpstreamError{Cause: err, Retryable: apperrors.IsRetryable(err) || ctx.Err() != nil}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.DebugContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.ErrorContext(ctx, "enrichment API returned non-200 status",
			"model", req.Model,
			"status", resp.StatusCode,
			"body", string(snippet))
		return nil, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
			Retryable:  apperrors.IsRetryableHTTPStatus(resp.StatusCode),
		}
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if ctx.Err() != nil {
			return nil, &domain.UpstreamError{Cause: err, Retryable: true}
		}
		return nil, &domain.ResponseValidationError{Reason: "malformed completion envelope", Cause: err}
	}

	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return nil, &domain.ResponseValidationError{Reason: "completion has no content"}
	}

	model := decoded.Model
	if model == "" {
		model = req.Model
	}

	completion := &domain.Completion{
		Text:  decoded.Choices[0].Message.Content,
		Model: model,
		Usage: domain.TokenUsage{
			InputTokens:  decoded.Usage.PromptTokens,
			OutputTokens: decoded.Usage.CompletionTokens,
		},
	}

	c.logger.InfoContext(ctx, "enrichment API completed",
		"model", model,
		"input_tokens", completion.Usage.InputTokens,
		"output_tokens", completion.Usage.OutputTokens,
		"finish_reason", decoded.Choices[0].FinishReason,
		"duration_ms", time.Since(start).Milliseconds())

	return completion, nil
}
