package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scrapefeed/internal/api"
	"github.com/jonesrussell/scrapefeed/internal/extract"
	"github.com/jonesrussell/scrapefeed/internal/logger"
)

const apiListHTML = `<html><body>
<div class="post"><h2 class="t">First</h2><a href="/one">read</a></div>
<div class="post"><h2 class="t">Second</h2><a href="/two">read</a></div>
</body></html>`

func newTestRouter() http.Handler {
	return api.SetupRouter(logger.NewNoOp(), extract.New(logger.NewNoOp()))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "client-supplied", rec.Header().Get("X-Request-ID"))
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter()

	body := map[string]any{
		"html":     apiListHTML,
		"base_url": "https://ex.com",
		"config": map[string]any{
			"list": map[string]any{
				"item":  ".post",
				"title": ".t",
				"link":  "a",
			},
		},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/extract", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "First", resp.Items[0].Title)
	assert.Equal(t, "https://ex.com/one", resp.Items[0].Link)
	assert.Equal(t, 2, resp.Diagnostics.TotalEmitted)
}

func TestExtractEndpoint_MissingHTML(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/extract", map[string]any{
		"config": map[string]any{"list": map[string]any{"item": ".post"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractEndpoint_MissingItemSelector(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/extract", map[string]any{
		"html": apiListHTML,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectorTestEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/selectors/test", map[string]any{
		"html":     apiListHTML,
		"selector": ".post .t",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SelectorTestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"First", "Second"}, resp.Samples)
}

func TestSelectorValidateEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/selectors/validate", map[string]any{
		"html": apiListHTML,
		"config": map[string]any{
			"list": map[string]any{"item": ".post", "link": "a"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Report.TotalItems)
	assert.Equal(t, 2, resp.Report.ItemsWithLinks)
}

func TestSynthesizeEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/selectors/synthesize", map[string]any{
		"html":   apiListHTML,
		"target": ".post h2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SynthesizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Specific)
	assert.Equal(t, "h2.t", resp.General)
}

func TestSynthesizeEndpoint_NoMatch(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/selectors/synthesize", map[string]any{
		"html":   apiListHTML,
		"target": ".absent",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDateTestEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/dates/test", map[string]any{
		"value":   "2024-03-05",
		"formats": []string{"%d/%m/%Y", "%Y-%m-%d"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DateTestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Matched)
	assert.False(t, resp.Results[0].Matched)
	assert.True(t, resp.Results[1].Matched)
}

func TestExtractDetailEndpoint(t *testing.T) {
	router := newTestRouter()

	body := map[string]any{
		"html":     `<article><h1 class="hl">Title</h1><div class="body"><p>Text</p></div></article>`,
		"base_url": "https://ex.com/page",
		"config": map[string]any{
			"detail": map[string]any{
				"title":   ".hl",
				"content": ".body",
			},
		},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/extract/detail", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Item)
	assert.Equal(t, "Title", resp.Item.Title)
	assert.Equal(t, "https://ex.com/page", resp.Item.Link)
	assert.Contains(t, resp.Item.Content, "<p>Text</p>")
}
