package selector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

const (
	// maxSamples caps how many match samples a test result carries.
	maxSamples = 3
	// maxSampleLength caps the length of each sample.
	maxSampleLength = 100
)

// TestResult reports how a selector behaved against one document. It is
// produced fresh per call and never persisted.
type TestResult struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// Evaluate runs a selector against the document and reports the match
// count plus a few text samples. It is a total function: a selector that
// does not compile yields zero matches, never an error.
func Evaluate(doc *dom.Document, sel string) TestResult {
	result := TestResult{Samples: []string{}}

	matches := doc.Query(sel)
	result.Count = matches.Length()

	matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(result.Samples) >= maxSamples {
			return false
		}
		if sample := sampleText(s); sample != "" {
			result.Samples = append(result.Samples, truncate(sample, maxSampleLength))
		}

		return true
	})

	return result
}

// sampleText derives a representative string for one matched element:
// a datetime attribute when present, the content attribute for meta
// tags, otherwise the trimmed text content.
func sampleText(s *goquery.Selection) string {
	if dt, ok := s.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}

	if goquery.NodeName(s) == "meta" {
		if content, ok := s.Attr("content"); ok {
			return strings.TrimSpace(content)
		}

		return ""
	}

	return strings.Join(strings.Fields(s.Text()), " ")
}

func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	return text[:maxLen] + "..."
}
