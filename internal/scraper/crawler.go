package scraper

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"go-jobsearch-malawi/internal/browser"
	"go-jobsearch-malawi/internal/config"
	"go-jobsearch-malawi/internal/fetch"
	"go-jobsearch-malawi/internal/filter"
	"go-jobsearch-malawi/internal/models"
)

const (
	//listings older than this are dropped in direct-fetch mode
	recencyCutoffDays = 30

	//pagination links are only discovered this deep into a run
	paginationPageLimit = 15
)

// Candidate container cascades, most site-specific first. The last one is
// only tried when everything else came up empty.
var containerSelectors = []string{
	"div.job-listing",
	"article.job",
	"div.job",
	"article",
	"div[class*=job], div[class*=listing], div[class*=card], div[class*=post]",
}

const broadContainerSelector = "article, div.post, div.entry, div.item, div.content"

// Renderer is the headless strategy as the crawler sees it.
type Renderer interface {
	RenderHTML(ctx context.Context, url string) (string, error)
	Close()
}

// Crawler walks the listing site breadth-first from a fixed seed list,
// extracting jobs as it goes. All state lives in a per-run crawlState, so
// concurrent runs never share anything.
type Crawler struct {
	cfg     *config.Config
	fetcher fetch.Fetcher

	//swapped out in tests; the default launches headless Chromium
	newRenderer func() (Renderer, error)
}

func NewCrawler(cfg *config.Config, fetcher fetch.Fetcher) *Crawler {
	return &Crawler{
		cfg:     cfg,
		fetcher: fetcher,
		newRenderer: func() (Renderer, error) {
			return browser.NewRenderer(cfg)
		},
	}
}

// crawlState is one run's working memory. Created at run start, discarded
// at run end, never persisted.
type crawlState struct {
	visited  mapset.Set[string]
	enqueued mapset.Set[string]
	queue    []string
	pages    int

	jobs     []models.Job
	seenJobs map[string]struct{}
}

func newCrawlState(seeds []string) *crawlState {
	st := &crawlState{
		visited:  mapset.NewThreadUnsafeSet[string](),
		enqueued: mapset.NewThreadUnsafeSet[string](),
		seenJobs: make(map[string]struct{}),
	}
	for _, s := range seeds {
		st.enqueue(s)
	}
	return st
}

// enqueue adds a URL unless it was already visited or already queued.
func (st *crawlState) enqueue(url string) {
	if url == "" || st.visited.Contains(url) || st.enqueued.Contains(url) {
		return
	}
	st.enqueued.Add(url)
	st.queue = append(st.queue, url)
}

func (st *crawlState) dequeue() string {
	u := st.queue[0]
	st.queue = st.queue[1:]
	return u
}

func (st *crawlState) requeueFront(url string) {
	st.queue = append([]string{url}, st.queue...)
}

// dedupeKey implements job identity: lowercased, trimmed title+company.
// The site exposes no stable IDs, so this heuristic is all there is.
func dedupeKey(job *models.Job) string {
	return strings.ToLower(strings.TrimSpace(job.Title)) + "|" + strings.ToLower(strings.TrimSpace(job.Company))
}

// CrawlAll visits up to MaxPages listing pages and returns every recent,
// unique job found, in discovery order. An empty result is a normal
// outcome, not an error: fetch failures are logged and skipped.
func (c *Crawler) CrawlAll(ctx context.Context) []models.Job {
	runID := uuid.NewString()[:8]
	log.Printf("🚀 [run %s] Starting comprehensive crawl of %s", runID, models.SourceWebsite)

	st := newCrawlState(c.cfg.SeedURLs)

	if c.cfg.UseBrowser {
		if err := c.crawlRendered(ctx, st); err != nil {
			log.Printf("⚠️ [run %s] Headless render failed: %v. Falling back to direct fetch.", runID, err)
			c.crawlDirect(ctx, st)
		}
	} else {
		c.crawlDirect(ctx, st)
	}

	log.Printf("🎯 [run %s] Crawl completed!", runID)
	log.Printf("📊 [run %s] Total pages crawled: %d", runID, st.pages)
	log.Printf("📋 [run %s] Total jobs found: %d", runID, len(st.jobs))

	return st.jobs
}

// crawlDirect is the plain-HTTP BFS: dequeue, fetch, extract, discover
// pagination links, repeat until the queue drains or the page cap hits.
func (c *Crawler) crawlDirect(ctx context.Context, st *crawlState) {
	for len(st.queue) > 0 && st.pages < c.cfg.MaxPages {
		currentURL := st.dequeue()
		if currentURL == "" || st.visited.Contains(currentURL) {
			continue
		}
		st.visited.Add(currentURL)
		st.pages++

		log.Printf("📄 Crawling page %d: %s", st.pages, currentURL)

		doc, err := c.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			log.Printf("   ❌ Error fetching %s: %v", currentURL, err)
			continue
		}

		c.harvest(st, doc, currentURL, true)

		if st.pages <= paginationPageLimit {
			c.discoverPagination(st, doc, currentURL)
		}
	}
}

// crawlRendered renders each seed in a headless browser. Pagination
// discovery is skipped: a rendered page is assumed to hold the full
// client-side listing set already, and so is the recency cutoff. Any
// failure bubbles up so the caller can fall back to direct fetching;
// the browser is released no matter what.
func (c *Crawler) crawlRendered(ctx context.Context, st *crawlState) error {
	renderer, err := c.newRenderer()
	if err != nil {
		return err
	}
	defer renderer.Close()

	for len(st.queue) > 0 && st.pages < c.cfg.MaxPages {
		currentURL := st.dequeue()
		if currentURL == "" || st.visited.Contains(currentURL) {
			continue
		}

		log.Printf("🌐 Rendering page: %s", currentURL)

		html, err := renderer.RenderHTML(ctx, currentURL)
		if err != nil {
			//leave the URL for the direct-fetch fallback
			st.requeueFront(currentURL)
			return err
		}

		st.visited.Add(currentURL)
		st.pages++

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			log.Printf("   ❌ Error parsing rendered HTML for %s: %v", currentURL, err)
			continue
		}

		c.harvest(st, doc, currentURL, false)
	}

	return nil
}

// harvest extracts jobs out of one page's candidate elements, applying the
// recency cutoff (direct mode only) and title+company deduplication.
func (c *Crawler) harvest(st *crawlState, doc *goquery.Document, baseURL string, applyRecency bool) {
	candidates := findCandidates(doc)
	log.Printf("   📊 Found %d potential job elements", candidates.Length())

	jobsOnPage := 0
	oldJobs := 0

	candidates.Each(func(_ int, sel *goquery.Selection) {
		job := ExtractJob(sel, baseURL)
		if job == nil {
			return
		}

		if applyRecency && !filter.IsRecent(job.PostedTime, recencyCutoffDays) {
			oldJobs++
			return
		}

		key := dedupeKey(job)
		if _, dup := st.seenJobs[key]; dup {
			return
		}
		st.seenJobs[key] = struct{}{}

		st.jobs = append(st.jobs, *job)
		jobsOnPage++
	})

	log.Printf("   ✅ Extracted %d valid jobs from this page", jobsOnPage)
	if oldJobs > 0 {
		log.Printf("   ⏰ Skipped %d old jobs", oldJobs)
	}
}

// findCandidates runs the container cascade over the document.
func findCandidates(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	log.Println("   ⚠️ No job elements found, trying broader search...")
	return doc.Find(broadContainerSelector)
}

// discoverPagination grows the BFS frontier from "/page/" links; the site
// never advertises its total page count up front.
func (c *Crawler) discoverPagination(st *crawlState, doc *goquery.Document, currentURL string) {
	doc.Find(`a[href*="/page/"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		st.enqueue(resolveURL(href, currentURL))
	})
}
