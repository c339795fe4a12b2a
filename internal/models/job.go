package models

// SourceWebsite is the only site this pipeline crawls.
const SourceWebsite = "jobsearchmalawi.com"

const (
	DefaultCompany  = "Company Not Listed"
	DefaultLocation = "Malawi"
	DefaultJobType  = "Full Time"
)

// Job is one listing extracted from the source site. Title/company/location
// come from the listing card; CategoryMatches, RelevanceScore and Category
// are filled in later by the filtering pipeline.
type Job struct {
	Title         string `json:"title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	JobType       string `json:"job_type"`
	PostedTime    string `json:"posted_time"`
	JobURL        string `json:"job_url"`
	Description   string `json:"description"`
	SourceWebsite string `json:"source_website"`

	CategoryMatches []string `json:"category_matches,omitempty"`
	RelevanceScore  float64  `json:"relevance_score,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// JobDetail is the result of scraping a single job's own page.
type JobDetail struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	DescriptionText  string   `json:"description_text"`
	DescriptionHTML  string   `json:"description_html"`
	Emails           []string `json:"emails"`
	ApplicationLinks []string `json:"application_links"`
}
