package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"story-pipeline/domain"
	"story-pipeline/service"
)

// ExtractRequest is the body of POST /api/v1/extract.
type ExtractRequest struct {
	StoryID string `json:"story_id"`
	URL     string `json:"url"`
}

// ExtractResponse reports the outcome of one on-demand extraction.
type ExtractResponse struct {
	Content *string                 `json:"content,omitempty"`
	Method  domain.ExtractionMethod `json:"method"`
	Error   string                  `json:"error,omitempty"`
	Quality float64                 `json:"quality"`
	Length  int                     `json:"length"`
	Success bool                    `json:"success"`
}

// ExtractHandler serves on-demand full-text extraction for a story.
type ExtractHandler struct {
	extractor ArticleExtractor
	logger    *slog.Logger
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(extractor ArticleExtractor, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, logger: logger}
}

// HandleExtract handles POST /api/v1/extract requests.
//
// A URL rejected by validation answers 422. A page that cannot be fetched or yields no
// usable text answers 200 with success false.
func (h *ExtractHandler) HandleExtract(c echo.Context) error {
	ctx := c.Request().Context()

	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to bind extract request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	storyID := uuid.Nil
	if req.StoryID != "" {
		id, err := uuid.Parse(req.StoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "story_id must be a UUID")
		}
		storyID = id
	}

	result, err := h.extractor.Extract(ctx, service.ExtractRequest{URL: url, StoryID: storyID})
	if err != nil {
		method := result.Method
		if method == "" {
			method = domain.ExtractionMethodNone
		}
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			h.logger.InfoContext(ctx, "extract rejected url", "url", url, "error", err)
			return c.JSON(http.StatusUnprocessableEntity, ExtractResponse{
				Method: method,
				Error:  "url rejected: " + err.Error(),
			})
		case errors.Is(err, domain.ErrFetchFailed):
			h.logger.InfoContext(ctx, "extract fetch failed", "url", url, "error", err)
			return c.JSON(http.StatusOK, ExtractResponse{
				Method: method,
				Error:  "failed to fetch article",
			})
		default:
			return err
		}
	}

	if !result.HasContent() {
		return c.JSON(http.StatusOK, ExtractResponse{
			Method: result.Method,
			Error:  "no extractable content found",
		})
	}

	return c.JSON(http.StatusOK, ExtractResponse{
		Success: true,
		Content: result.Content,
		Quality: result.Quality,
		Method:  result.Method,
		Length:  result.Length,
	})
}
