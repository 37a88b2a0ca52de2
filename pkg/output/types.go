package output

import (
	"time"

	"github.com/lectern-project/lectern/pkg/listing"
)

// Batch is one scrape's worth of sections plus its provenance. Every
// formatter consumes a Batch.
type Batch struct {
	Source    string             `json:"source"`
	Term      string             `json:"term"`
	ScrapedAt time.Time          `json:"scraped_at"`
	Sections  []*listing.Section `json:"sections"`
}

// Options tune formatter behavior.
type Options struct {
	// Verbose adds linkage provenance to human-readable output.
	Verbose bool
	// WeekStart anchors calendar output: the Monday of the week the
	// recurring events start in.
	WeekStart time.Time
}
