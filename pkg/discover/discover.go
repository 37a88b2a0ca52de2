// Package discover crawls the registrar's subject index to enumerate the
// subject codes available for a term.
package discover

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gocolly/colly"
)

// Subject is one entry of the registrar's subject index.
type Subject struct {
	Code string
	Name string
	URL  string
}

// subjectHref matches index links of the form /subj/COMS/.
var subjectHref = regexp.MustCompile(`/subj/([A-Z]{2,5})/?$`)

// Subjects crawls the subject index page and returns the subjects it links
// to, de-duplicated and sorted by code.
func Subjects(indexURL, userAgent string) ([]Subject, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))

	seen := make(map[string]bool)
	var subjects []Subject
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Request.AbsoluteURL(e.Attr("href"))
		m := subjectHref.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		subjects = append(subjects, Subject{
			Code: m[1],
			Name: strings.TrimSpace(e.Text),
			URL:  href,
		})
	})

	var crawlErr error
	c.OnError(func(_ *colly.Response, err error) {
		crawlErr = err
	})

	if err := c.Visit(indexURL); err != nil {
		return nil, fmt.Errorf("visiting subject index %s: %w", indexURL, err)
	}
	c.Wait()
	if crawlErr != nil {
		return nil, fmt.Errorf("crawling subject index %s: %w", indexURL, crawlErr)
	}

	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}

// ListingURL builds the listing page URL for one subject and term.
func ListingURL(base, code, term string) string {
	return fmt.Sprintf("%s/subj/%s/_%s.html", strings.TrimRight(base, "/"), code, term)
}
