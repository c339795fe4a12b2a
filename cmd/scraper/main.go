package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-jobsearch-malawi/internal/config"
	"go-jobsearch-malawi/internal/models"
	"go-jobsearch-malawi/internal/scraper"
)

// One-shot crawl from the command line. Handy for checking what the
// pipeline sees without standing up the API server.
func main() {
	category := flag.String("category", "general", "job category to filter by")
	qualifications := flag.String("qualifications", "", "free-text applicant qualifications")
	flag.Parse()

	cfg := config.Load()
	log.Printf("🔧 Config loaded. Seeds: %v", cfg.SeedURLs)

	//full run budget
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pipeline := scraper.NewPipeline(cfg)

	jobs := pipeline.SearchByCategory(ctx, *category, *qualifications)

	log.Printf("📦 Total jobs collected: %d", len(jobs))
	for _, job := range jobs {
		log.Printf("  [%.2f] %s @ %s (%s)", job.RelevanceScore, job.Title, job.Company, job.PostedTime)
	}

	saveJobs(jobs)

	log.Println("🏁 Execution finished.")
}

func saveJobs(jobs []models.Job) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	//create logs directory if not exists
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(logDir, filename)

	data, err := json.MarshalIndent(jobs, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write results file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
