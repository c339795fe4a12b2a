package scraper

import (
	"log"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"go-jobsearch-malawi/internal/models"
)

// Selector cascades per field. WP Job Manager markup (what the site runs)
// comes first, then class names common to other listing plugins, then bare
// tags as a last resort. First candidate with non-empty text wins.
var (
	titleSelectors    = []string{".position h3", "h1", "h2", "h3", "h4", "a"}
	companySelectors  = []string{".company strong", ".company", ".employer", ".organization", "strong", "b"}
	locationSelectors = []string{".location", ".place", ".address"}
	postedSelectors   = []string{".date", ".time", ".posted", "time"}

	//click target wrapping the whole card, when the theme provides one
	primaryLinkSelectors = []string{"a.job_listing-clickbox", ".position a"}
)

// Anchor/button text that shows up where a title should be but never is one.
var badTitles = map[string]struct{}{
	"read more": {},
	"view more": {},
	"see more":  {},
	"apply now": {},
}

// ExtractJob builds a Job from one listing-like element. It returns nil
// when the element does not look like a real listing (no usable title).
// Extraction never panics; anything unexpected counts as a rejection.
func ExtractJob(sel *goquery.Selection, baseURL string) (job *models.Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Recovered extracting job details: %v", r)
			job = nil
		}
	}()

	title := findText(sel, titleSelectors)
	if !validTitle(title) {
		return nil
	}

	company := findText(sel, companySelectors)
	if company == "" {
		company = models.DefaultCompany
	}

	location := findText(sel, locationSelectors)
	if location == "" {
		location = models.DefaultLocation
	}

	postedTime := findText(sel, postedSelectors)
	if postedTime == "" {
		postedTime = "Recent"
	}

	jobURL := ""
	link := findLink(sel)
	if href, ok := link.Attr("href"); ok {
		jobURL = resolveURL(href, baseURL)
	}

	return &models.Job{
		Title:         title,
		Company:       company,
		Location:      location,
		JobType:       models.DefaultJobType,
		PostedTime:    postedTime,
		JobURL:        jobURL,
		Description:   "",
		SourceWebsite: models.SourceWebsite,
	}
}

func validTitle(title string) bool {
	if utf8.RuneCountInString(title) < 3 {
		return false
	}
	_, bad := badTitles[strings.ToLower(title)]
	return !bad
}

// findText walks the cascade and returns the first non-empty text.
func findText(sel *goquery.Selection, candidates []string) string {
	for _, c := range candidates {
		el := sel.Find(c).First()
		if el.Length() == 0 {
			continue
		}
		if text := cleanText(el.Text()); text != "" {
			return text
		}
	}
	return ""
}

// findLink prefers a dedicated click-target anchor, else the first anchor.
func findLink(sel *goquery.Selection) *goquery.Selection {
	for _, c := range primaryLinkSelectors {
		if link := sel.Find(c).First(); link.Length() > 0 {
			return link
		}
	}
	return sel.Find("a").First()
}

// resolveURL makes href absolute against the page it was found on.
func resolveURL(href, baseURL string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// cleanText NFC-normalizes scraped text and collapses all runs of
// whitespace (including &nbsp;) into single spaces.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
