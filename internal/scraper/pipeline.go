package scraper

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"go-jobsearch-malawi/internal/config"
	"go-jobsearch-malawi/internal/fetch"
	"go-jobsearch-malawi/internal/filter"
	"go-jobsearch-malawi/internal/models"
)

// Pipeline wires the crawler, category filter and relevance scorer into
// the two search operations the API exposes. It holds no per-request
// state: every call runs an independent crawl.
type Pipeline struct {
	cfg     *config.Config
	crawler *Crawler
	fetcher fetch.Fetcher
}

func NewPipeline(cfg *config.Config) *Pipeline {
	fetcher := fetch.NewHTTPFetcher(cfg)
	return &Pipeline{
		cfg:     cfg,
		crawler: NewCrawler(cfg, fetcher),
		fetcher: fetcher,
	}
}

// SearchByCategory crawls everything, falls back to demo data when the
// crawl comes back empty, filters by category, scores each survivor
// against the qualifications text and sorts best-first. Ties keep
// discovery order.
func (p *Pipeline) SearchByCategory(ctx context.Context, category, userQualifications string) []models.Job {
	log.Printf("🚀 Starting job search for category: %s", category)
	start := time.Now()

	log.Println("📊 Step 1: Crawling ALL jobs from JobSearch Malawi...")
	allJobs := p.crawler.CrawlAll(ctx)

	if len(allJobs) == 0 {
		log.Println("⚠️ No jobs found from crawling, using demo data...")
		allJobs = filter.DemoJobsForCategory(category)
	}

	log.Printf("📋 Total jobs collected: %d", len(allJobs))

	log.Println("🔍 Step 2: Filtering jobs by category...")
	categoryJobs := filter.FilterByCategory(allJobs, category)

	log.Println("🎯 Step 3: Calculating job relevance...")
	label := filter.CategoryLabel(category)
	finalJobs := make([]models.Job, 0, len(categoryJobs))
	for _, job := range categoryJobs {
		job.RelevanceScore = filter.RelevanceScore(job, userQualifications)
		job.Category = label
		finalJobs = append(finalJobs, job)
	}

	sort.SliceStable(finalJobs, func(i, j int) bool {
		return finalJobs[i].RelevanceScore > finalJobs[j].RelevanceScore
	})

	log.Printf("⏱️ Job search completed in %.2f seconds", time.Since(start).Seconds())
	log.Printf("🎯 Final result: %d jobs for '%s' category", len(finalJobs), category)

	return finalJobs
}

// AllRecentJobs is the raw crawl output: unfiltered, unscored.
func (p *Pipeline) AllRecentJobs(ctx context.Context) []models.Job {
	return p.crawler.CrawlAll(ctx)
}

// JobDetails scrapes one job's own page for its description, contact
// emails and application links.
func (p *Pipeline) JobDetails(ctx context.Context, jobURL string) (*models.JobDetail, error) {
	doc, err := p.fetcher.Fetch(ctx, jobURL)
	if err != nil {
		return nil, fmt.Errorf("fetch job page: %w", err)
	}
	return ExtractJobDetail(doc, jobURL), nil
}
