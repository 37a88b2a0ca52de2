// Package extract pulls the fixed-width listing text out of registrar HTML
// pages. The registrar serves each subject's listing inside a <pre> block;
// everything around it is navigation chrome.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing is one subject page's raw text: the column header line and the
// body lines that follow it.
type Listing struct {
	Header string
	Body   []string
}

// headerTokens identify the listing header line among the <pre> text. Both
// must appear: "Number" alone shows up in footnotes too.
var headerTokens = []string{"Number", "Call#"}

// ListingFromHTML locates the listing <pre> block in a subject page and
// splits it into header and body.
func ListingFromHTML(html string) (*Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	var text string
	doc.Find("pre").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t := sel.Text()
		if isListingText(t) {
			text = t
			return false
		}
		return true
	})
	if text == "" {
		return nil, fmt.Errorf("page contains no listing block")
	}
	return SplitListing(text)
}

// SplitListing splits raw listing text into its header line and body lines.
// Lines above the header are page banner text and are dropped.
func SplitListing(text string) (*Listing, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if isHeaderLine(line) {
			return &Listing{Header: line, Body: lines[i+1:]}, nil
		}
	}
	return nil, fmt.Errorf("listing text contains no header line")
}

// PageText flattens a detail page to plain text for sentence scanning.
func PageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing detail page: %w", err)
	}
	return doc.Text(), nil
}

func isListingText(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if isHeaderLine(line) {
			return true
		}
	}
	return false
}

func isHeaderLine(line string) bool {
	for _, tok := range headerTokens {
		if !strings.Contains(line, tok) {
			return false
		}
	}
	return true
}
