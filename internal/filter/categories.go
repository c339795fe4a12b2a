package filter

import (
	"log"
	"strings"

	"go-jobsearch-malawi/internal/models"
)

// JobCategories maps every supported category to its match keywords.
// "general" is empty on purpose: it means no filtering at all.
// Built once at startup and never mutated, so concurrent reads are safe.
var JobCategories = map[string][]string{
	"technology":      {"developer", "programmer", "software", "IT", "ICT", "tech", "computer", "web", "data", "system", "network", "database", "AI", "machine learning", "coding", "programming", "python", "java", "react", "frontend", "backend"},
	"accounting":      {"accountant", "accounting", "finance", "financial", "bookkeeper", "auditor", "tax", "payroll", "budget", "audit", "treasury", "cost", "management accountant"},
	"healthcare":      {"nurse", "doctor", "medical", "health", "clinical", "pharmacy", "dentist", "therapist", "healthcare", "hospital", "clinic", "patient", "medical officer"},
	"education":       {"teacher", "instructor", "lecturer", "professor", "education", "tutor", "academic", "school", "university", "teaching", "curriculum", "headmaster"},
	"engineering":     {"engineer", "engineering", "civil", "mechanical", "electrical", "construction", "technical", "structural", "project engineer", "site engineer"},
	"marketing":       {"marketing", "sales", "advertising", "promotion", "brand", "digital marketing", "social media", "campaign", "customer", "business development"},
	"human_resources": {"HR", "human resources", "recruitment", "talent", "personnel", "employee", "training", "organizational", "payroll officer"},
	"legal":           {"lawyer", "legal", "attorney", "law", "paralegal", "compliance", "legal advisor", "legal officer", "court", "litigation"},
	"agriculture":     {"agriculture", "farming", "agricultural", "agribusiness", "livestock", "crops", "farm", "irrigation", "extension", "agronomist"},
	"general":         {},
}

// CategoryOrder keeps API listings deterministic (maps iterate randomly).
var CategoryOrder = []string{
	"technology",
	"accounting",
	"healthcare",
	"education",
	"engineering",
	"marketing",
	"human_resources",
	"legal",
	"agriculture",
	"general",
}

// KnownCategory reports whether the key exists in the taxonomy.
func KnownCategory(category string) bool {
	_, ok := JobCategories[category]
	return ok
}

// CategoryLabel is the human readable form of a category key.
func CategoryLabel(category string) string {
	return strings.ToUpper(strings.ReplaceAll(category, "_", " "))
}

// FilterByCategory keeps the jobs whose title, company or description
// mention at least one of the category's keywords, annotating each kept
// job with the keywords that matched. "general" and unknown categories
// return the input as-is. Input jobs are never mutated.
func FilterByCategory(allJobs []models.Job, category string) []models.Job {
	if category == "general" {
		log.Println("🎯 Category 'general' selected - returning all jobs")
		return allJobs
	}

	keywords, ok := JobCategories[category]
	if !ok {
		log.Printf("⚠️ Unknown category '%s', returning all jobs", category)
		return allJobs
	}

	log.Printf("🔍 Filtering %d jobs for category: %s", len(allJobs), category)

	filtered := make([]models.Job, 0)
	for _, job := range allJobs {
		text := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)

		var matches []string
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				matches = append(matches, kw)
			}
		}

		if len(matches) > 0 {
			job.CategoryMatches = matches
			filtered = append(filtered, job)
		}
	}

	log.Printf("✅ Found %d jobs matching '%s' category", len(filtered), category)
	if len(filtered) == 0 {
		log.Printf("⚠️ No jobs found for '%s' category, 'general' may work better", category)
	}

	return filtered
}
