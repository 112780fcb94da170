package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Item is one structured feed entry produced by an extraction call.
// Items are created once per accepted item root and never mutated
// afterwards.
type Item struct {
	// ID is a deterministic digest of the item's link (or title when no
	// link was extracted), so re-running extraction on identical input
	// reproduces identical IDs.
	ID string `json:"id"`
	// Title is the extracted title text.
	Title string `json:"title"`
	// Link is the absolute entry URL.
	Link string `json:"link,omitempty"`
	// Description is the raw HTML fragment of the description subtree,
	// with excluded subtrees removed.
	Description string `json:"description,omitempty"`
	// Style carries the text of style elements associated with the
	// description fragment, when the source inlines presentation.
	Style string `json:"style,omitempty"`
	// Content is the full article content fragment on detail pages.
	Content string `json:"content,omitempty"`
	// Date is the parsed publication date, nil when no configured
	// format matched.
	Date *time.Time `json:"date,omitempty"`
	// RawDate preserves the source date text when no format matched.
	RawDate string `json:"raw_date,omitempty"`
	// Image is the absolute image URL, empty when none was found.
	Image string `json:"image,omitempty"`
	// Author is the extracted author text.
	Author string `json:"author,omitempty"`
	// Categories are the extracted category labels in document order.
	Categories []string `json:"categories,omitempty"`
}

// Diagnostics summarizes one extraction run.
type Diagnostics struct {
	// TotalMatched is how many elements the item selector matched.
	TotalMatched int `json:"total_matched"`
	// TotalEmitted is how many items survived the required-field policy.
	TotalEmitted int `json:"total_emitted"`
	// SkippedMissingField counts item roots dropped for lacking the
	// mode's required field.
	SkippedMissingField int `json:"skipped_missing_field"`
}

// itemID derives the deterministic item identifier.
func itemID(link, title string) string {
	seed := link
	if seed == "" {
		seed = title
	}
	if seed == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(seed))

	return hex.EncodeToString(sum[:])
}
