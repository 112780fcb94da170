package selector

import (
	"strconv"
	"strings"

	"github.com/jonesrussell/scrapefeed/internal/dom"
)

// SynthesizeSpecific derives a selector that pins down the given element
// as precisely as possible. It walks from the element toward the
// document root: an id terminates the walk, otherwise each step emits a
// tag segment disambiguated by a filtered class or an :nth-child
// ordinal. Segments are joined with the descendant combinator and the
// walk stops at the body boundary. The document is never mutated.
func SynthesizeSpecific(el *dom.Element, filter *ClassFilter) string {
	if el == nil {
		return ""
	}
	if filter == nil {
		filter = DefaultClassFilter()
	}

	var segments []string
	for cur := el; cur != nil && !isBoundary(cur); cur = cur.Parent() {
		if id, ok := cur.Attr("id"); ok && strings.TrimSpace(id) != "" {
			segments = append([]string{"#" + strings.TrimSpace(id)}, segments...)
			break
		}

		segments = append([]string{specificSegment(cur, filter)}, segments...)
	}

	return strings.Join(segments, " ")
}

// SynthesizeGeneral derives a selector meant to match many structurally
// similar siblings of the given element, trading precision for reuse:
// tag.class from the element's own best class, an ancestor id/class
// wrapped as descendant context, or the bare tag as a last resort.
func SynthesizeGeneral(el *dom.Element, filter *ClassFilter) string {
	if el == nil {
		return ""
	}
	if filter == nil {
		filter = DefaultClassFilter()
	}

	if classes := filter.FilteredClasses(el); len(classes) > 0 {
		return el.Tag() + "." + classes[0]
	}

	for anc := el.Parent(); anc != nil && !isBoundary(anc); anc = anc.Parent() {
		if id, ok := anc.Attr("id"); ok && strings.TrimSpace(id) != "" {
			return "#" + strings.TrimSpace(id) + " " + el.Tag()
		}
		if classes := filter.FilteredClasses(anc); len(classes) > 0 {
			return "." + classes[0] + " " + el.Tag()
		}
	}

	return el.Tag()
}

// specificSegment builds the selector segment for one element on the
// upward walk.
func specificSegment(el *dom.Element, filter *ClassFilter) string {
	tag := el.Tag()
	classes := filter.FilteredClasses(el)

	siblings := sameTagSiblings(el)
	if len(siblings) <= 1 {
		return tag
	}

	if len(classes) > 0 && classUniqueAmongSiblings(el, siblings, classes[0]) {
		return tag + "." + classes[0]
	}

	segment := tag
	if len(classes) > 0 {
		segment += "." + classes[0]
	}

	return segment + ":nth-child(" + strconv.Itoa(el.Index()) + ")"
}

// sameTagSiblings returns the element and its siblings that share its
// tag, under the same parent. A detached element counts only itself.
func sameTagSiblings(el *dom.Element) []*dom.Element {
	parent := el.Parent()
	if parent == nil {
		return []*dom.Element{el}
	}

	var same []*dom.Element
	for _, child := range parent.Children() {
		if child.Tag() == el.Tag() {
			same = append(same, child)
		}
	}

	return same
}

// classUniqueAmongSiblings reports whether no same-tag sibling other
// than el carries the class.
func classUniqueAmongSiblings(el *dom.Element, siblings []*dom.Element, class string) bool {
	for _, sib := range siblings {
		if sib.Node() == el.Node() {
			continue
		}
		for _, c := range sib.Classes() {
			if c == class {
				return false
			}
		}
	}

	return true
}

// isBoundary reports whether the walk has reached the document's
// top-level content root.
func isBoundary(el *dom.Element) bool {
	switch el.Tag() {
	case "body", "html", "head":
		return true
	default:
		return false
	}
}
