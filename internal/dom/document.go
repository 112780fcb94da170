// Package dom provides a read-only view over leniently parsed HTML
// documents. Selector compilation is explicit: a selector string that
// does not parse yields zero matches instead of a panic.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	// ErrEmptyDocument is returned when the HTML input is empty or blank.
	ErrEmptyDocument = errors.New("html input is empty")
	// ErrEmptySelector is returned when a selector string is empty or blank.
	ErrEmptySelector = errors.New("selector is empty")
)

// Document wraps a parsed HTML tree. The tree is never mutated after
// parsing; every accessor is a read-only lookup.
type Document struct {
	doc *goquery.Document
}

// Parse parses raw HTML into a Document. Parsing is lenient: malformed
// markup is repaired the way browsers repair it and never fails hard.
// Only blank input is rejected.
func Parse(rawHTML string) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Document{doc: doc}, nil
}

// Compile parses a CSS selector string into a matcher. Unlike goquery's
// Find, a malformed selector is reported as an error, never a panic.
func Compile(selector string) (goquery.Matcher, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return nil, ErrEmptySelector
	}

	matcher, err := cascadia.Compile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", trimmed, err)
	}

	return matcher, nil
}

// Query returns the elements matching selector in document order. A
// selector that does not compile matches nothing.
func (d *Document) Query(selector string) *goquery.Selection {
	matcher, err := Compile(selector)
	if err != nil {
		return d.doc.Selection.Slice(0, 0)
	}

	return d.doc.FindMatcher(matcher)
}

// QueryAll returns the elements matching selector in document order as
// Element handles. A selector that does not compile matches nothing.
func (d *Document) QueryAll(selector string) []*Element {
	sel := d.Query(selector)

	elements := make([]*Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		elements = append(elements, &Element{node: n})
	}

	return elements
}

// Root returns the selection for the document node, the starting point
// for matcher-based scoped queries.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Body returns the body element, or nil if the document has none.
func (d *Document) Body() *Element {
	sel := d.doc.Find("body")
	if sel.Length() == 0 {
		return nil
	}

	return &Element{node: sel.Nodes[0]}
}
