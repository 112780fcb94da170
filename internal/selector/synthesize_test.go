package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scrapefeed/internal/dom"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

const synthHTML = `<html><body>
<div id="main">
  <ul class="posts">
    <li class="post featured"><a href="/a">First</a></li>
    <li class="post"><a href="/b">Second</a></li>
    <li class="post"><a href="/c">Third</a></li>
  </ul>
</div>
</body></html>`

func TestSynthesizeSpecific_IDShortCircuit(t *testing.T) {
	doc, err := dom.Parse(`<div id="content"><p id="intro">text</p></div>`)
	require.NoError(t, err)

	els := doc.QueryAll("p")
	require.Len(t, els, 1)

	sel := selector.SynthesizeSpecific(els[0], nil)
	assert.Equal(t, "#intro", sel)
}

func TestSynthesizeSpecific_AncestorID(t *testing.T) {
	doc, err := dom.Parse(synthHTML)
	require.NoError(t, err)

	items := doc.QueryAll("li")
	require.Len(t, items, 3)

	sel := selector.SynthesizeSpecific(items[1], nil)
	assert.Equal(t, "#main ul li.post:nth-child(2)", sel)
}

func TestSynthesizeSpecific_ClassDisambiguation(t *testing.T) {
	doc, err := dom.Parse(`<div><span class="date">d</span><span class="title">t</span></div>`)
	require.NoError(t, err)

	spans := doc.QueryAll("span")
	require.Len(t, spans, 2)

	// Each span's class is unique among its same-tag siblings, so no
	// ordinal is needed.
	assert.Equal(t, "div span.date", selector.SynthesizeSpecific(spans[0], nil))
	assert.Equal(t, "div span.title", selector.SynthesizeSpecific(spans[1], nil))
}

func TestSynthesizeSpecific_OrdinalFallback(t *testing.T) {
	doc, err := dom.Parse(`<div><p>one</p><p>two</p></div>`)
	require.NoError(t, err)

	ps := doc.QueryAll("p")
	require.Len(t, ps, 2)

	assert.Equal(t, "div p:nth-child(1)", selector.SynthesizeSpecific(ps[0], nil))
	assert.Equal(t, "div p:nth-child(2)", selector.SynthesizeSpecific(ps[1], nil))
}

func TestSynthesizeSpecific_IgnoresGeneratedClasses(t *testing.T) {
	doc, err := dom.Parse(`<div><p class="css-1abc2de">one</p><p class="css-9zyx8wv">two</p></div>`)
	require.NoError(t, err)

	ps := doc.QueryAll("p")
	require.Len(t, ps, 2)

	sel := selector.SynthesizeSpecific(ps[1], nil)
	assert.NotContains(t, sel, "css-")
	assert.Contains(t, sel, ":nth-child(2)")
}

func TestSynthesizeSpecific_RoundTrip(t *testing.T) {
	doc, err := dom.Parse(synthHTML)
	require.NoError(t, err)

	// Every synthesized selector must match the element it was built
	// from when evaluated against the same document.
	for _, target := range []string{"li", "a", "ul"} {
		for _, el := range doc.QueryAll(target) {
			sel := selector.SynthesizeSpecific(el, nil)
			require.NotEmpty(t, sel)

			found := false
			for _, match := range doc.QueryAll(sel) {
				if match.Node() == el.Node() {
					found = true
					break
				}
			}
			assert.True(t, found, "selector %q does not match its source element", sel)
		}
	}
}

func TestSynthesizeGeneral_OwnClass(t *testing.T) {
	doc, err := dom.Parse(synthHTML)
	require.NoError(t, err)

	items := doc.QueryAll("li")
	require.Len(t, items, 3)

	sel := selector.SynthesizeGeneral(items[0], nil)
	assert.Equal(t, "li.post", sel)

	// The general selector is meant to match all the siblings.
	assert.Len(t, doc.QueryAll(sel), 3)
}

func TestSynthesizeGeneral_AncestorContext(t *testing.T) {
	doc, err := dom.Parse(synthHTML)
	require.NoError(t, err)

	links := doc.QueryAll("a")
	require.Len(t, links, 3)

	// Links carry no class of their own; the nearest usable ancestor
	// class provides the context.
	sel := selector.SynthesizeGeneral(links[0], nil)
	assert.Equal(t, ".post a", sel)
	assert.Len(t, doc.QueryAll(sel), 3)
}

func TestSynthesizeGeneral_AncestorID(t *testing.T) {
	doc, err := dom.Parse(`<div id="sidebar"><span>a</span></div>`)
	require.NoError(t, err)

	spans := doc.QueryAll("span")
	require.Len(t, spans, 1)

	assert.Equal(t, "#sidebar span", selector.SynthesizeGeneral(spans[0], nil))
}

func TestSynthesizeGeneral_BareTagFallback(t *testing.T) {
	doc, err := dom.Parse(`<div><p>text</p></div>`)
	require.NoError(t, err)

	ps := doc.QueryAll("p")
	require.Len(t, ps, 1)

	assert.Equal(t, "p", selector.SynthesizeGeneral(ps[0], nil))
}

func TestSynthesize_NilElement(t *testing.T) {
	assert.Empty(t, selector.SynthesizeSpecific(nil, nil))
	assert.Empty(t, selector.SynthesizeGeneral(nil, nil))
}
