// Package linker resolves subordinate sections (recitations, labs,
// discussions) to their owning lecture sections.
//
// Two signals are tried in order. The strong one is an authoritative
// sentence on the section's detail page naming the parent course. When the
// page cannot be fetched or carries no such sentence, the linker falls back
// to a title match against the batch's primary sections. A subordinate that
// matches neither stays unlinked and is reported, not failed.
package linker

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/lectern-project/lectern/pkg/listing"
)

// Fetcher retrieves the text of a detail page by URL. Implementations own
// their retry and throttling policy; the linker treats any error as "no
// strong signal" and moves on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// requiredFor is the authoritative parent hint the registrar embeds in
// subordinate detail pages.
var requiredFor = regexp.MustCompile(`(?i)required\s+(?:recitation|discussion|lab)\s+session\s+for\s+students\s+enrolled\s+in\s+([A-Za-z]{2,5}\s+[A-Za-z]?\d{3,4}[A-Za-z]{0,2})`)

// primaryComponents are the component kinds that can own a subordinate
// section even when their credit value is unresolved.
var primaryComponents = map[string]bool{
	"LECTURE":  true,
	"SEMINAR":  true,
	"WORKSHOP": true,
	"STUDIO":   true,
}

// DetailURL builds the canonical detail-page URL for one section.
func DetailURL(base, subject, number, term, section string) string {
	return fmt.Sprintf("%s/subj/%s/%s-%s-%s/",
		strings.TrimRight(base, "/"), subject, number, term, section)
}

// Result summarizes one linking pass.
type Result struct {
	// Strong and Fallback count subordinates linked by each signal.
	Strong   int
	Fallback int
	// Unresolved lists the call numbers of subordinates left unlinked,
	// sorted for stable reporting.
	Unresolved []string
}

// Option configures a Linker.
type Option func(*Linker)

// WithConcurrency caps the number of detail pages fetched at once. The cap
// exists for politeness toward the source, not throughput.
func WithConcurrency(n int) Option {
	return func(l *Linker) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// Linker resolves parent course codes for one batch at a time. Safe for
// concurrent use across batches.
type Linker struct {
	fetcher     Fetcher
	concurrency int
}

// New builds a Linker around a fetch capability. A nil fetcher is allowed
// and limits the linker to the title-match fallback.
func New(fetcher Fetcher, opts ...Option) *Linker {
	l := &Linker{fetcher: fetcher, concurrency: 2}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Link populates DetailURL on every section and ParentCourseCode on every
// subordinate it can resolve. Detail pages are fetched concurrently up to
// the configured cap; the call returns only once every subordinate has been
// linked or judged unresolvable.
func (l *Linker) Link(ctx context.Context, sections []*listing.Section, base, term string) Result {
	index := primaryIndex(sections)

	var subs []*listing.Section
	for _, sec := range sections {
		u := DetailURL(base, sec.Subject, sec.Number, term, sec.SectionCode)
		sec.DetailURL = &u
		if sec.Subordinate {
			subs = append(subs, sec)
		}
	}

	var (
		mu  sync.Mutex
		res Result
		wg  sync.WaitGroup
		sem = make(chan struct{}, l.concurrency)
	)
	for _, sec := range subs {
		wg.Add(1)
		sem <- struct{}{}
		go func(sec *listing.Section) {
			defer wg.Done()
			defer func() { <-sem }()
			kind := l.resolve(ctx, sec, index)
			mu.Lock()
			switch kind {
			case linkStrong:
				res.Strong++
			case linkFallback:
				res.Fallback++
			default:
				res.Unresolved = append(res.Unresolved, sec.CallNumber)
			}
			mu.Unlock()
		}(sec)
	}
	wg.Wait()
	sort.Strings(res.Unresolved)
	return res
}

type linkKind int

const (
	linkNone linkKind = iota
	linkStrong
	linkFallback
)

func (l *Linker) resolve(ctx context.Context, sec *listing.Section, index map[string][]string) linkKind {
	if l.fetcher != nil && sec.DetailURL != nil {
		page, err := l.fetcher.Fetch(ctx, *sec.DetailURL)
		if err == nil {
			if m := requiredFor.FindStringSubmatch(page); m != nil {
				parent := collapseSpace(m[1])
				sec.ParentCourseCode = &parent
				return linkStrong
			}
		}
	}
	if codes := index[indexKey(sec.Subject, sec.Title)]; len(codes) > 0 {
		parent := codes[0]
		sec.ParentCourseCode = &parent
		return linkFallback
	}
	return linkNone
}

// primaryIndex maps (subject, normalized title) to the distinct course codes
// of candidate parent sections, preserving first-seen order.
func primaryIndex(sections []*listing.Section) map[string][]string {
	index := make(map[string][]string)
	for _, sec := range sections {
		if sec.Subordinate || !isPrimary(sec) {
			continue
		}
		key := indexKey(sec.Subject, sec.Title)
		code := sec.CourseCode()
		if !containsString(index[key], code) {
			index[key] = append(index[key], code)
		}
	}
	return index
}

func isPrimary(sec *listing.Section) bool {
	if sec.CreditMin != nil && *sec.CreditMin > 0 {
		return true
	}
	return sec.Component != nil && primaryComponents[*sec.Component]
}

func indexKey(subject, title string) string {
	return subject + "\x00" + collapseSpace(strings.ToLower(title))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
