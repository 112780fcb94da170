package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scrapefeed/internal/extract"
)

const detailPageHTML = `<html><body>
<article>
  <h1 class="headline">Deep Dive</h1>
  <span class="byline">Jane Doe</span>
  <time class="published" datetime="2024-03-05 09:00">yesterday</time>
  <img class="lead" src="/img/lead.jpg">
  <div class="body">
    <style>.body p { color: #222; }</style>
    <p>Paragraph one.</p>
    <div class="related">You may also like</div>
    <p>Paragraph two.</p>
  </div>
</article>
</body></html>`

func detailConfig() extract.Config {
	return extract.Config{
		Detail: extract.DetailSelectors{
			Title:   ".headline",
			Author:  ".byline",
			Date:    ".published",
			Image:   ".lead",
			Content: ".body",
		},
		Exclude:     []string{".related"},
		DateFormats: []string{"%Y-%m-%d %H:%M"},
	}
}

func TestExtractDetail(t *testing.T) {
	e := extract.New(nil)
	pageURL := "https://ex.com/posts/deep-dive"

	item, diag, err := e.ExtractDetail(detailPageHTML, pageURL, detailConfig(), testNow)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, 1, diag.TotalMatched)
	assert.Equal(t, 1, diag.TotalEmitted)

	assert.Equal(t, "Deep Dive", item.Title)
	assert.Equal(t, pageURL, item.Link, "the page URL doubles as the item link")
	assert.Equal(t, "Jane Doe", item.Author)
	assert.Equal(t, "https://ex.com/img/lead.jpg", item.Image)

	require.NotNil(t, item.Date)
	assert.Equal(t, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC), *item.Date)

	assert.Contains(t, item.Content, "Paragraph one.")
	assert.Contains(t, item.Content, "Paragraph two.")
	assert.NotContains(t, item.Content, "You may also like", "excluded subtree removed")
	assert.NotContains(t, item.Content, "<style>", "style elements travel separately")
	assert.Contains(t, item.Style, ".body p")

	assert.NotEmpty(t, item.ID)
}

func TestExtractDetail_EmptyContentStillEmits(t *testing.T) {
	e := extract.New(nil)

	item, diag, err := e.ExtractDetail(`<h1 class="headline">Bare</h1>`,
		"https://ex.com/bare", detailConfig(), testNow)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, "Bare", item.Title)
	assert.Empty(t, item.Content)
	assert.Equal(t, 1, diag.TotalEmitted)
}

func TestExtractDetail_Idempotent(t *testing.T) {
	e := extract.New(nil)
	pageURL := "https://ex.com/posts/deep-dive"

	first, _, err := e.ExtractDetail(detailPageHTML, pageURL, detailConfig(), testNow)
	require.NoError(t, err)
	second, _, err := e.ExtractDetail(detailPageHTML, pageURL, detailConfig(), testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractDetail_EmptyHTML(t *testing.T) {
	e := extract.New(nil)

	_, _, err := e.ExtractDetail("", "https://ex.com", detailConfig(), testNow)
	require.Error(t, err)
}
