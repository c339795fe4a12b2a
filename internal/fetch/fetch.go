package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-jobsearch-malawi/internal/config"
)

// Fetcher obtains a parsed HTML document for a URL. The crawler treats any
// error as "no content from this URL" and moves on.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// HTTPFetcher is the plain GET strategy: one request per page with a
// configurable user-agent and timeout, no JavaScript execution.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *HostLimiter
}

func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		userAgent: cfg.UserAgent,
		limiter:   NewHostLimiter(cfg.RequestsPerSecond, 1),
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := f.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}
