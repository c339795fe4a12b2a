package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobsearch-malawi/internal/config"
)

func fetcherConfig() *config.Config {
	return &config.Config{
		UserAgent:         "test-agent/1.0",
		TimeoutMs:         5000,
		RequestsPerSecond: 100,
	}
}

func TestHTTPFetcher_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<html><body><h1>ok</h1></body></html>`)
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPFetcher(fetcherConfig())

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, "ok", doc.Find("h1").Text())
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	f := NewHTTPFetcher(fetcherConfig())

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	cfg := fetcherConfig()
	cfg.TimeoutMs = 50
	f := NewHTTPFetcher(cfg)

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	f := NewHTTPFetcher(fetcherConfig())

	_, err := f.Fetch(context.Background(), "://not-a-url")
	assert.Error(t, err)
}

func TestHostLimiter_SpacesRequests(t *testing.T) {
	hl := NewHostLimiter(50, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, hl.WaitURL(context.Background(), "https://example.com/page"))
	}

	//two waits at 50 req/s is at least 40ms
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiter_CancelledContext(t *testing.T) {
	hl := NewHostLimiter(0.001, 1)
	require.NoError(t, hl.WaitURL(context.Background(), "https://example.com/"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, hl.WaitURL(ctx, "https://example.com/"))
}
