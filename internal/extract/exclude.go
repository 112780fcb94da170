package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

// excluder answers whether a node sits inside a subtree named by any
// exclude selector scoped under one item root. It is a membership test
// built once per item; the source tree is never modified, unlike a
// Remove()-based approach, so the same parsed document serves every
// field of every item.
type excluder struct {
	nodes map[*html.Node]struct{}
}

// newExcluder compiles the exclude selectors against the item root.
// Selectors that do not compile are skipped individually; one bad rule
// never voids extraction.
func newExcluder(root *goquery.Selection, excludeSelectors []string) *excluder {
	ex := &excluder{nodes: make(map[*html.Node]struct{})}

	for _, raw := range excludeSelectors {
		matcher, err := dom.Compile(raw)
		if err != nil {
			continue
		}
		for _, n := range root.FindMatcher(matcher).Nodes {
			ex.nodes[n] = struct{}{}
		}
	}

	return ex
}

// excluded reports whether the node or any of its ancestors was matched
// by an exclude selector.
func (ex *excluder) excluded(n *html.Node) bool {
	if len(ex.nodes) == 0 {
		return false
	}

	for cur := n; cur != nil; cur = cur.Parent {
		if _, ok := ex.nodes[cur]; ok {
			return true
		}
	}

	return false
}

// textWithout returns the whitespace-normalized text of the subtree,
// skipping excluded nodes and their descendants.
func textWithout(n *html.Node, ex *excluder) string {
	var b strings.Builder
	collectTextWithout(n, ex, &b)

	return strings.Join(strings.Fields(b.String()), " ")
}

func collectTextWithout(n *html.Node, ex *excluder, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
	case html.ElementNode, html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && ex.excluded(c) {
				continue
			}
			collectTextWithout(c, ex, b)
		}
	}
}

// fragmentWithout renders the inner HTML of the subtree with excluded
// subtrees omitted, by rendering a filtered shallow copy. Style element
// text is collected separately so presentation the source inlines can
// travel with the fragment.
func fragmentWithout(n *html.Node, ex *excluder) (fragment, styleText string) {
	var (
		frag   strings.Builder
		styles strings.Builder
	)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && ex.excluded(c) {
			continue
		}
		clone := cloneWithout(c, ex, &styles)
		if clone == nil {
			continue
		}
		if err := html.Render(&frag, clone); err != nil {
			continue
		}
	}

	return strings.TrimSpace(frag.String()), strings.TrimSpace(styles.String())
}

// cloneWithout copies a subtree minus excluded nodes. Style elements are
// drained into styles instead of the fragment.
func cloneWithout(n *html.Node, ex *excluder, styles *strings.Builder) *html.Node {
	if n.Type == html.ElementNode && n.Data == "style" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		if b.Len() > 0 {
			styles.WriteString(strings.TrimSpace(b.String()))
			styles.WriteByte('\n')
		}

		return nil
	}

	clone := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
	}
	clone.Attr = append(clone.Attr, n.Attr...)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && ex.excluded(c) {
			continue
		}
		if child := cloneWithout(c, ex, styles); child != nil {
			clone.AppendChild(child)
		}
	}

	return clone
}
