package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobsearch-malawi/internal/config"
	"go-jobsearch-malawi/internal/fetch"
	"go-jobsearch-malawi/internal/models"
)

func listingJob(title, company string) models.Job {
	return models.Job{Title: title, Company: company}
}

func testConfig(seeds ...string) *config.Config {
	return &config.Config{
		SeedURLs:          seeds,
		UserAgent:         "test-agent",
		TimeoutMs:         5000,
		MaxPages:          20,
		SettleMs:          1,
		RequestsPerSecond: 100,
	}
}

func listingHTML(title, company, posted, href string) string {
	return fmt.Sprintf(`
		<div class="job-listing">
			<h3>%s</h3>
			<strong>%s</strong>
			<span class="date">%s</span>
			<a href="%s"></a>
		</div>`, title, company, posted, href)
}

// countingServer wraps an httptest server and records how often each path
// was requested.
func countingServer(t *testing.T, pages map[string]string) (*httptest.Server, func(path string) int) {
	t.Helper()

	var mu sync.Mutex
	hits := make(map[string]int)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()

		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "<html><body>"+body+"</body></html>")
	}))
	t.Cleanup(srv.Close)

	return srv, func(path string) int {
		mu.Lock()
		defer mu.Unlock()
		return hits[path]
	}
}

func TestCrawlAll_PaginationDedupAndRecency(t *testing.T) {
	pages := map[string]string{
		"/": listingHTML("Web Developer", "Acme Ltd", "2 days ago", "/job/web-developer/") +
			listingHTML("Registered Nurse", "Ministry of Health", "1 day ago", "/job/nurse/") +
			`<a href="/page/2/">2</a><a href="/page/2/">2 again</a>`,
		"/page/2/": listingHTML("  web developer ", "ACME LTD", "1 day ago", "/job/web-developer-duplicate/") +
			listingHTML("Stale Posting", "Old Co", "3 months ago", "/job/stale/") +
			listingHTML("Field Agronomist", "AgriCo", "1 week ago", "/job/agronomist/") +
			`<a href="/page/2/">self</a>`,
	}
	srv, hits := countingServer(t, pages)

	cfg := testConfig(srv.URL + "/")
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))

	jobs := crawler.CrawlAll(context.Background())

	require.Len(t, jobs, 3)
	//discovery order is preserved
	assert.Equal(t, "Web Developer", jobs[0].Title)
	assert.Equal(t, "Registered Nurse", jobs[1].Title)
	assert.Equal(t, "Field Agronomist", jobs[2].Title)

	//relative job links resolve against the page they came from
	assert.Equal(t, srv.URL+"/job/web-developer/", jobs[0].JobURL)

	//each page is fetched exactly once despite duplicate pagination links
	assert.Equal(t, 1, hits("/"))
	assert.Equal(t, 1, hits("/page/2/"))
}

func TestCrawlAll_AllSeedsFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL+"/", srv.URL+"/jobs/")
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))

	jobs := crawler.CrawlAll(context.Background())

	assert.Empty(t, jobs)
}

func TestCrawlAll_PageCap(t *testing.T) {
	//every page links to the next, forever
	var mu sync.Mutex
	fetched := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetched++
		n := fetched
		mu.Unlock()
		fmt.Fprintf(w, `<html><body><a href="/page/%d/">next</a></body></html>`, n+1)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL + "/")
	cfg.MaxPages = 5
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))

	crawler.CrawlAll(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, fetched)
}

func TestCrawlAll_PaginationDiscoveryStopsAtDepthLimit(t *testing.T) {
	var mu sync.Mutex
	fetched := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetched++
		n := fetched
		mu.Unlock()
		fmt.Fprintf(w, `<html><body><a href="/page/%d/">next</a></body></html>`, n+1)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL + "/")
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))

	crawler.CrawlAll(context.Background())

	//pages past the discovery depth stop feeding the queue, so the crawl
	//ends one page after the limit even though the cap allows 20
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, paginationPageLimit+1, fetched)
}

type fakeRenderer struct {
	pages    map[string]string
	failOn   string
	rendered []string
	closed   bool
}

func (f *fakeRenderer) RenderHTML(_ context.Context, url string) (string, error) {
	f.rendered = append(f.rendered, url)
	if url == f.failOn {
		return "", errors.New("navigation crashed")
	}
	return "<html><body>" + f.pages[url] + "</body></html>", nil
}

func (f *fakeRenderer) Close() { f.closed = true }

func TestCrawlAll_HeadlessAcceptsOldJobsAndSkipsPagination(t *testing.T) {
	seed := "https://rendered.test/"
	renderer := &fakeRenderer{
		pages: map[string]string{
			seed: listingHTML("Archivist", "Dusty Ltd", "6 months ago", "/job/archivist/") +
				`<a href="/page/2/">2</a>`,
		},
	}

	cfg := testConfig(seed)
	cfg.UseBrowser = true
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))
	crawler.newRenderer = func() (Renderer, error) { return renderer, nil }

	jobs := crawler.CrawlAll(context.Background())

	//no recency cutoff in headless mode
	require.Len(t, jobs, 1)
	assert.Equal(t, "Archivist", jobs[0].Title)

	//pagination is never followed: rendered pages hold the full set
	assert.Equal(t, []string{seed}, renderer.rendered)
	assert.True(t, renderer.closed)
}

func TestCrawlAll_HeadlessLaunchFailureFallsBackToDirect(t *testing.T) {
	pages := map[string]string{
		"/": listingHTML("Web Developer", "Acme Ltd", "2 days ago", "/job/web-developer/"),
	}
	srv, _ := countingServer(t, pages)

	cfg := testConfig(srv.URL + "/")
	cfg.UseBrowser = true
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))
	crawler.newRenderer = func() (Renderer, error) { return nil, errors.New("chromium not installed") }

	jobs := crawler.CrawlAll(context.Background())

	require.Len(t, jobs, 1)
	assert.Equal(t, "Web Developer", jobs[0].Title)
}

func TestCrawlAll_HeadlessNavigationFailureFallsBackMidRun(t *testing.T) {
	pages := map[string]string{
		"/jobs/": listingHTML("Field Agronomist", "AgriCo", "1 week ago", "/job/agronomist/"),
	}
	srv, hits := countingServer(t, pages)

	seed1 := srv.URL + "/"
	seed2 := srv.URL + "/jobs/"

	renderer := &fakeRenderer{
		pages: map[string]string{
			seed1: listingHTML("Web Developer", "Acme Ltd", "2 days ago", "/job/web-developer/"),
		},
		failOn: seed2,
	}

	cfg := testConfig(seed1, seed2)
	cfg.UseBrowser = true
	crawler := NewCrawler(cfg, fetch.NewHTTPFetcher(cfg))
	crawler.newRenderer = func() (Renderer, error) { return renderer, nil }

	jobs := crawler.CrawlAll(context.Background())

	//jobs rendered before the failure survive, the failed seed is retried
	//over plain HTTP, and the browser still gets released
	require.Len(t, jobs, 2)
	assert.Equal(t, "Web Developer", jobs[0].Title)
	assert.Equal(t, "Field Agronomist", jobs[1].Title)
	assert.True(t, renderer.closed)
	assert.Equal(t, 1, hits("/jobs/"))
	assert.Equal(t, 0, hits("/"))
}

func TestDedupeKey(t *testing.T) {
	a := listingJob("  Web Developer ", "ACME Ltd")
	b := listingJob("web developer", "acme ltd")
	c := listingJob("Web Developer", "Other Co")

	assert.Equal(t, dedupeKey(&a), dedupeKey(&b))
	assert.NotEqual(t, dedupeKey(&a), dedupeKey(&c))
}
