package extract

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonesrussell/scrapefeed/internal/datefmt"
	"github.com/jonesrussell/scrapefeed/internal/dom"
	"github.com/jonesrussell/scrapefeed/internal/logger"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

// Extractor runs extraction calls. It holds no per-call state: every
// call parses its own tree and shares nothing, so one Extractor is safe
// for concurrent use.
type Extractor struct {
	logger logger.Interface
}

// New creates an Extractor. A nil logger falls back to a no-op logger.
func New(log logger.Interface) *Extractor {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Extractor{logger: log}
}

// Extract parses the HTML once, evaluates the item selector, and walks
// the matched item roots in document order, applying the exclusion
// filter, the scoped field selectors, and the date formats to each.
// Items missing the mode's required field (list: title, detail: link)
// are skipped and counted, never fatal. The reference time is an
// explicit input; re-running with identical inputs reproduces identical
// output.
func (e *Extractor) Extract(rawHTML, baseURL string, cfg Config, now time.Time) ([]Item, Diagnostics, error) {
	var diag Diagnostics

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return nil, diag, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = selector.ModeList
	}
	base := parseBase(baseURL, cfg.BaseURL)

	roots := doc.Query(cfg.List.Item)
	diag.TotalMatched = roots.Length()

	items := make([]Item, 0, roots.Length())
	roots.Each(func(i int, root *goquery.Selection) {
		ex := newExcluder(root, cfg.Exclude)
		item, ok := e.extractItem(root, ex, cfg, mode, base, now)
		if !ok {
			diag.SkippedMissingField++
			e.logger.Debug("Skipping item missing required field",
				"index", i,
				"mode", string(mode))
			return
		}
		items = append(items, item)
	})

	diag.TotalEmitted = len(items)
	e.logger.Debug("Extraction finished",
		"matched", diag.TotalMatched,
		"emitted", diag.TotalEmitted,
		"skipped", diag.SkippedMissingField)

	return items, diag, nil
}

// extractItem extracts the configured fields from one item root.
func (e *Extractor) extractItem(
	root *goquery.Selection,
	ex *excluder,
	cfg Config,
	mode selector.Mode,
	base *url.URL,
	now time.Time,
) (Item, bool) {
	sels := cfg.List

	item := Item{
		Title:      fieldText(root, sels.Title, ex),
		Author:     fieldText(root, sels.Author, ex),
		Categories: allMatchTexts(root, sels.Categories, ex),
	}
	item.Link = resolveRef(base, linkValue(root, sels.Link, ex))
	item.Image = resolveRef(base, imageValue(root, sels.Image, ex))
	item.Description, item.Style = fieldFragment(root, sels.Description, ex)

	if raw := dateValue(root, sels.Date, ex); raw != "" {
		if t, ok := matchDate(raw, cfg.DateFormats, now); ok {
			item.Date = t
		} else {
			item.RawDate = raw
		}
	}

	if mode == selector.ModeDetail {
		if item.Link == "" {
			return Item{}, false
		}
	} else if item.Title == "" {
		return Item{}, false
	}

	item.ID = itemID(item.Link, item.Title)

	return item, true
}

// matchDate tries each format in order; the first structural match wins.
func matchDate(raw string, formats []string, now time.Time) (*time.Time, bool) {
	for _, format := range formats {
		m, err := datefmt.Compile(format)
		if err != nil {
			continue
		}
		if result := m.Match(raw, now); result.Matched {
			return result.Value, true
		}
	}

	return nil, false
}

// firstMatch returns the first non-excluded node matching the selector
// under root, or root's own node when the selector matches it directly.
func firstMatch(root *goquery.Selection, sel string, ex *excluder) *html.Node {
	matcher, err := dom.Compile(sel)
	if err != nil {
		return nil
	}

	if root.IsMatcher(matcher) && len(root.Nodes) > 0 {
		return root.Nodes[0]
	}

	for _, n := range root.FindMatcher(matcher).Nodes {
		if !ex.excluded(n) {
			return n
		}
	}

	return nil
}

// fieldText extracts the first match's text, minus excluded subtrees.
func fieldText(root *goquery.Selection, sel string, ex *excluder) string {
	n := firstMatch(root, sel, ex)
	if n == nil {
		return ""
	}

	return textWithout(n, ex)
}

// fieldFragment extracts the first match's inner HTML, minus excluded
// subtrees, along with any inline style text found in it.
func fieldFragment(root *goquery.Selection, sel string, ex *excluder) (fragment, style string) {
	n := firstMatch(root, sel, ex)
	if n == nil {
		return "", ""
	}

	return fragmentWithout(n, ex)
}

// linkValue extracts the entry URL: the matched element's href, or the
// first non-excluded anchor inside it.
func linkValue(root *goquery.Selection, sel string, ex *excluder) string {
	n := firstMatch(root, sel, ex)
	if n == nil {
		return ""
	}

	if href := nodeAttr(n, "href"); href != "" {
		return href
	}

	return descendantHref(n, ex)
}

// imageValue extracts the image URL from src, data-src, or a meta
// content attribute.
func imageValue(root *goquery.Selection, sel string, ex *excluder) string {
	n := firstMatch(root, sel, ex)
	if n == nil {
		return ""
	}

	for _, attr := range []string{"src", "data-src"} {
		if v := nodeAttr(n, attr); v != "" {
			return v
		}
	}
	if n.Data == "meta" {
		return nodeAttr(n, "content")
	}

	return ""
}

// dateValue extracts the date text, preferring a datetime attribute
// over the element text.
func dateValue(root *goquery.Selection, sel string, ex *excluder) string {
	n := firstMatch(root, sel, ex)
	if n == nil {
		return ""
	}

	if dt := nodeAttr(n, "datetime"); dt != "" {
		return dt
	}
	if n.Data == "meta" {
		return nodeAttr(n, "content")
	}

	return textWithout(n, ex)
}

// allMatchTexts collects the text of every non-excluded match, skipping
// empties and duplicates, in document order.
func allMatchTexts(root *goquery.Selection, sel string, ex *excluder) []string {
	matcher, err := dom.Compile(sel)
	if err != nil {
		return nil
	}

	var (
		values []string
		seen   = make(map[string]struct{})
	)
	for _, n := range root.FindMatcher(matcher).Nodes {
		if ex.excluded(n) {
			continue
		}
		text := textWithout(n, ex)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		values = append(values, text)
	}

	return values
}

// descendantHref finds the first non-excluded href-bearing anchor below n.
func descendantHref(n *html.Node, ex *excluder) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || ex.excluded(c) {
			continue
		}
		if c.Data == "a" {
			if href := nodeAttr(c, "href"); href != "" {
				return href
			}
		}
		if href := descendantHref(c, ex); href != "" {
			return href
		}
	}

	return ""
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}

	return ""
}

// parseBase picks the explicit base URL over the configured one and
// parses it. An unparseable base leaves references unresolved rather
// than failing the call.
func parseBase(baseURL, configured string) *url.URL {
	raw := baseURL
	if raw == "" {
		raw = configured
	}
	if raw == "" {
		return nil
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	return base
}

// resolveRef resolves a possibly relative reference against the base.
func resolveRef(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if base == nil {
		return ref
	}

	return base.ResolveReference(parsed).String()
}
