// Package api implements the HTTP API for the extraction service.
package api

import (
	"time"

	"github.com/jonesrussell/scrapefeed/internal/extract"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

// ExtractRequest is the request body for extraction endpoints.
type ExtractRequest struct {
	HTML    string         `json:"html" binding:"required"`
	BaseURL string         `json:"base_url"`
	Config  extract.Config `json:"config"`
	Now     *time.Time     `json:"now"`
}

// ExtractResponse carries the extracted items and run diagnostics.
type ExtractResponse struct {
	Items       []extract.Item      `json:"items"`
	Diagnostics extract.Diagnostics `json:"diagnostics"`
}

// DetailResponse carries a single detail-page item and run diagnostics.
type DetailResponse struct {
	Item        *extract.Item       `json:"item"`
	Diagnostics extract.Diagnostics `json:"diagnostics"`
}

// SelectorTestRequest asks how a selector behaves against a document.
type SelectorTestRequest struct {
	HTML     string `json:"html" binding:"required"`
	Selector string `json:"selector" binding:"required"`
}

// SelectorTestResponse reports match count and sample texts.
type SelectorTestResponse struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// ValidateRequest asks for a coherence check of list selectors.
type ValidateRequest struct {
	HTML   string         `json:"html" binding:"required"`
	Config extract.Config `json:"config"`
}

// ValidateResponse wraps the validation report.
type ValidateResponse struct {
	Report selector.ValidationReport `json:"report"`
}

// SynthesizeRequest asks for selectors describing the first element
// matched by Target.
type SynthesizeRequest struct {
	HTML   string `json:"html" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// SynthesizeResponse carries the synthesized selector pair.
type SynthesizeResponse struct {
	Specific string `json:"specific"`
	General  string `json:"general"`
}

// DateTestRequest asks whether a value matches any of the formats.
type DateTestRequest struct {
	Value   string     `json:"value" binding:"required"`
	Formats []string   `json:"formats" binding:"required"`
	Now     *time.Time `json:"now"`
}

// DateTestResult is the outcome for one format.
type DateTestResult struct {
	Format  string     `json:"format"`
	Matched bool       `json:"matched"`
	Value   *time.Time `json:"value,omitempty"`
	Reason  string     `json:"reason,omitempty"`
}

// DateTestResponse reports per-format results and the winning format.
type DateTestResponse struct {
	Results []DateTestResult `json:"results"`
	Matched bool             `json:"matched"`
}
