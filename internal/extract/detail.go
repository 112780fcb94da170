package extract

import (
	"time"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

// ExtractDetail applies the detail selectors to a single-item page and
// produces one item carrying the full content fragment. The page URL
// doubles as the item link; fetching it is the caller's concern. Whether
// an empty content field is acceptable is caller policy, so the item is
// emitted either way.
func (e *Extractor) ExtractDetail(rawHTML, pageURL string, cfg Config, now time.Time) (*Item, Diagnostics, error) {
	diag := Diagnostics{TotalMatched: 1}

	doc, err := dom.Parse(rawHTML)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	base := parseBase(pageURL, cfg.BaseURL)
	root := doc.Root()
	ex := newExcluder(root, cfg.Exclude)
	sels := cfg.Detail

	item := &Item{
		Title:      fieldText(root, sels.Title, ex),
		Author:     fieldText(root, sels.Author, ex),
		Categories: allMatchTexts(root, sels.Categories, ex),
		Link:       pageURL,
	}
	item.Image = resolveRef(base, imageValue(root, sels.Image, ex))

	var descStyle, contentStyle string
	item.Description, descStyle = fieldFragment(root, sels.Description, ex)
	item.Content, contentStyle = fieldFragment(root, sels.Content, ex)
	item.Style = contentStyle
	if item.Style == "" {
		item.Style = descStyle
	}

	if raw := dateValue(root, sels.Date, ex); raw != "" {
		if t, ok := matchDate(raw, cfg.DateFormats, now); ok {
			item.Date = t
		} else {
			item.RawDate = raw
		}
	}

	item.ID = itemID(item.Link, item.Title)
	diag.TotalEmitted = 1

	e.logger.Debug("Detail extraction finished",
		"url", pageURL,
		"has_content", item.Content != "")

	return item, diag, nil
}
