package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a handle on a single element node. Parent traversal is a
// non-owning lookup; holding an Element never keeps subtrees alive or
// permits mutation.
type Element struct {
	node *html.Node
}

// FromSelection returns an Element for the first node of a selection,
// or nil for an empty selection.
func FromSelection(sel *goquery.Selection) *Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}

	return &Element{node: sel.Nodes[0]}
}

// Node exposes the underlying parse-tree node for read-only use.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

// Classes returns the element's class tokens in attribute order.
func (e *Element) Classes() []string {
	raw, ok := e.Attr("class")
	if !ok {
		return nil
	}

	return strings.Fields(raw)
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)

	return b.String()
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, &Element{node: c})
		}
	}

	return children
}

// Parent returns the parent element, or nil at the document boundary.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}

	return &Element{node: p}
}

// Index returns the element's 1-based position among its parent's
// element children, as counted by :nth-child.
func (e *Element) Index() int {
	idx := 0
	for n := e.node; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			idx++
		}
	}

	return idx
}

// Matches reports whether the element matches the compiled selector.
func (e *Element) Matches(matcher goquery.Matcher) bool {
	return matcher.Match(e.node)
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
