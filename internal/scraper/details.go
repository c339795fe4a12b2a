package scraper

import (
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-jobsearch-malawi/internal/models"
)

var (
	detailTitleSelectors   = []string{".entry-title", "h1", "h2"}
	detailContentSelectors = []string{".job_description", ".single_job_listing", ".job-overview", ".entry-content", "article", "main"}

	//where the site keeps "how to apply" instructions
	applicationAreaSelectors = []string{".job_application", ".application", ".application_details", ".job-apply"}

	applyIntentRegex = regexp.MustCompile(`(?i)apply|submit application|send cv|send resume`)
)

// ExtractJobDetail pulls the full description, contact emails and
// application links out of a job's own page. Fields it cannot find stay
// empty; like listing extraction it never panics.
func ExtractJobDetail(doc *goquery.Document, pageURL string) (detail *models.JobDetail) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ Recovered extracting job detail page: %v", r)
			detail = &models.JobDetail{}
		}
	}()

	detail = &models.JobDetail{
		Title:    findText(doc.Selection, detailTitleSelectors),
		Company:  findText(doc.Selection, companySelectors),
		Location: findText(doc.Selection, locationSelectors),
	}

	if content := firstNonEmpty(doc, detailContentSelectors); content != nil {
		detail.DescriptionText = cleanText(content.Text())
		if html, err := content.Html(); err == nil {
			detail.DescriptionHTML = strings.TrimSpace(html)
		}
	}

	detail.Emails = collectEmails(doc)
	detail.ApplicationLinks = collectApplicationLinks(doc, pageURL)

	return detail
}

// firstNonEmpty returns the first cascade match that actually has text.
func firstNonEmpty(doc *goquery.Document, candidates []string) *goquery.Selection {
	for _, c := range candidates {
		el := doc.Find(c).First()
		if el.Length() > 0 && cleanText(el.Text()) != "" {
			return el
		}
	}
	return nil
}

// collectEmails scans the whole page for mailto links, keeping insertion
// order and dropping duplicates.
func collectEmails(doc *goquery.Document) []string {
	var emails []string
	seen := make(map[string]struct{})

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		//mailto links often carry ?subject=... parameters
		if i := strings.Index(addr, "?"); i >= 0 {
			addr = addr[:i]
		}
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		if _, dup := seen[addr]; dup {
			return
		}
		seen[addr] = struct{}{}
		emails = append(emails, addr)
	})

	return emails
}

// collectApplicationLinks scans the application area (the whole page when
// no such area exists) for anchors that either carry apply-intent wording
// or point at an absolute HTTP(S) URL. The job page's own URL is excluded.
func collectApplicationLinks(doc *goquery.Document, pageURL string) []string {
	area := doc.Selection
	for _, c := range applicationAreaSelectors {
		if el := doc.Find(c).First(); el.Length() > 0 {
			area = el
			break
		}
	}

	var links []string
	seen := make(map[string]struct{})

	area.Find("a[href], button[data-href]").Each(func(_ int, el *goquery.Selection) {
		href, ok := el.Attr("href")
		if !ok {
			href, _ = el.Attr("data-href")
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "#") {
			return
		}

		label := cleanText(el.Text())
		if !applyIntentRegex.MatchString(label) && !strings.HasPrefix(href, "http") {
			return
		}

		resolved := resolveURL(href, pageURL)
		if sameURL(resolved, pageURL) {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links
}

// sameURL compares two URLs ignoring fragments.
func sameURL(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	ua.Fragment = ""
	ub.Fragment = ""
	return ua.String() == ub.String()
}
