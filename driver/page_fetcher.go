package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"story-pipeline/config"
	"story-pipeline/domain"
	apperrors "story-pipeline/utils/errors"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// HostWaiter throttles requests per host.
type HostWaiter interface {
	WaitForURL(ctx context.Context, rawURL string) error
}

// FetchedPage is a successfully downloaded HTML document, decoded to UTF-8.
type FetchedPage struct {
	URL         *url.URL
	ContentType string
	HTML        []byte
	StatusCode  int
	Truncated   bool
}

// PageFetcher downloads article pages the way a desktop browser would.
type PageFetcher struct {
	client  *http.Client
	rotator *config.UserAgentRotator
	limiter HostWaiter
	logger  *slog.Logger
	cfg     config.HTTPConfig
}

func NewPageFetcher(cfg config.HTTPConfig, limiter HostWaiter, logger *slog.Logger) (*PageFetcher, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if !cfg.AllowPrivateNetworks {
		dialer.Control = denyPrivateDial
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ExpectContinueTimeout: cfg.ExpectContinueTimeout,
	}

	f := &PageFetcher{
		rotator: config.NewUserAgentRotator(&cfg),
		limiter: limiter,
		logger:  logger,
		cfg:     cfg,
	}
	f.client = &http.Client{
		Transport:     transport,
		Jar:           jar,
		Timeout:       cfg.Timeout,
		CheckRedirect: f.checkRedirect,
	}
	return f, nil
}

func (f *PageFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= f.cfg.MaxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, len(via))
	}
	if _, err := ValidateArticleURL(req.URL.String(), f.cfg.AllowPrivateNetworks); err != nil {
		return err
	}
	return nil
}

// Fetch downloads rawURL. URL validation failures wrap domain.ErrInvalidURL;
// everything else is a *domain.FetchError.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (*FetchedPage, error) {
	target, err := ValidateArticleURL(rawURL, f.cfg.AllowPrivateNetworks)
	if err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.WaitForURL(ctx, target.String()); err != nil {
			return nil, &domain.FetchError{URL: rawURL, Cause: err, Retryable: true}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	for key, value := range f.cfg.GetBrowserHeaders(f.rotator.Next()) {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.WarnContext(ctx, "page fetch failed",
			"url", rawURL,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, &domain.FetchError{URL: rawURL, Cause: err, Retryable: transportRetryable(err)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		if err := resp.Body.Close(); err != nil {
			f.logger.DebugContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.InfoContext(ctx, "page fetch returned non-2xx",
			"url", rawURL,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, &domain.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Retryable:  apperrors.IsRetryableHTTPStatus(resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, &domain.FetchError{
			URL:   rawURL,
			Cause: fmt.Errorf("%w: %s", errUnsupportedMedium, contentType),
		}
	}

	body, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		body = resp.Body
	}

	html, err := io.ReadAll(io.LimitReader(body, f.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Cause: err, Retryable: true}
	}

	page := &FetchedPage{
		URL:         resp.Request.URL,
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
	}
	if int64(len(html)) > f.cfg.MaxBodyBytes {
		html = html[:f.cfg.MaxBodyBytes]
		page.Truncated = true
		f.logger.WarnContext(ctx, "page body truncated", "url", rawURL, "limit_bytes", f.cfg.MaxBodyBytes)
	}
	page.HTML = html

	f.logger.DebugContext(ctx, "page fetched",
		"url", rawURL,
		"bytes", len(html),
		"duration_ms", time.Since(start).Milliseconds())

	return page, nil
}

func transportRetryable(err error) bool {
	return !errors.Is(err, errPrivateAddress) &&
		!errors.Is(err, errTooManyRedirects) &&
		!errors.Is(err, domain.ErrInvalidURL)
}

func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/plain":
		return true
	default:
		return false
	}
}
