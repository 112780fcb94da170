package selector

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

// Mode distinguishes list pages, where each item carries its own
// content, from detail pages, where the list only yields links.
type Mode string

const (
	// ModeList extracts full items from the listing page itself.
	ModeList Mode = "list"
	// ModeDetail extracts links on the listing page; content lives on
	// separately fetched per-item pages.
	ModeDetail Mode = "detail"
)

// Valid reports whether the mode is one of the known values.
func (m Mode) Valid() bool {
	return m == ModeList || m == ModeDetail
}

// Warning classifies a validation outcome for user display.
type Warning string

const (
	// WarningNone means the selectors look consistent.
	WarningNone Warning = ""
	// WarningNoItems means the item selector matched nothing.
	WarningNoItems Warning = "no_items"
	// WarningNoLinks means no matched item contains a link, which makes
	// detail-mode extraction impossible.
	WarningNoLinks Warning = "no_links"
	// WarningSelectorMismatch means the link selector matches elsewhere
	// in the document but never inside an item, the signature of a
	// selector written against the whole page instead of the item.
	WarningSelectorMismatch Warning = "selector_mismatch"
)

// ValidationReport summarizes how the item and link selectors relate on
// one document.
type ValidationReport struct {
	TotalItems     int     `json:"total_items"`
	ItemsWithLinks int     `json:"items_with_links"`
	Warning        Warning `json:"warning,omitempty"`
}

// ValidateListSelectors evaluates the item selector, counts how many
// matched items contain (or are) a link per the link selector, and
// classifies the result. An empty link selector falls back to any
// href-bearing anchor. Warning precedence: no_items, then no_links in
// detail mode, then selector_mismatch.
func ValidateListSelectors(doc *dom.Document, itemSelector, linkSelector string, mode Mode) ValidationReport {
	report := ValidationReport{}

	items := doc.Query(itemSelector)
	report.TotalItems = items.Length()
	if report.TotalItems == 0 {
		report.Warning = WarningNoItems
		return report
	}

	const anyLink = "a[href]"
	if linkSelector == "" {
		linkSelector = anyLink
	}

	linkMatcher, err := dom.Compile(linkSelector)
	if err != nil {
		// An unparseable link selector behaves like one that matches
		// nothing, and scoped-vs-document comparison is meaningless.
		if mode == ModeDetail {
			report.Warning = WarningNoLinks
		}

		return report
	}

	items.Each(func(_ int, item *goquery.Selection) {
		if item.IsMatcher(linkMatcher) || item.FindMatcher(linkMatcher).Length() > 0 {
			report.ItemsWithLinks++
		}
	})

	switch {
	case mode == ModeDetail && report.ItemsWithLinks == 0:
		report.Warning = WarningNoLinks
	case report.ItemsWithLinks == 0 && doc.Root().FindMatcher(linkMatcher).Length() > 0:
		report.Warning = WarningSelectorMismatch
	}

	return report
}
