package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractTitle_OgTitleWins(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta property="og:title" content="Chicken Tacos" />
		<title>Chicken Tacos – Site Name</title>
	</head><body><h1>Best Chicken Tacos</h1></body></html>`)

	assert.Equal(t, "Chicken Tacos", ExtractTitle(doc))
}

func TestExtractTitle_H1Fallback(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<title>Chicken Tacos | Skinnytaste</title>
	</head><body><h1>  Best Chicken Tacos  </h1></body></html>`)

	assert.Equal(t, "Best Chicken Tacos", ExtractTitle(doc))
}

func TestExtractTitle_TitleTagSplitsAtSeparator(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"em dash", "Recipe — Example", "Recipe"},
		{"pipe", "Apple Pie | Some Blog", "Apple Pie"},
		{"hyphen", "Beef Stew - Example", "Beef Stew"},
		{"no separator", "Plain Title", "Plain Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, "<html><head><title>"+tt.title+"</title></head><body></body></html>")
			assert.Equal(t, tt.want, ExtractTitle(doc))
		})
	}
}

func TestExtractTitle_DecodesEntities(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>Mac &amp; Cheese | Blog</title></head></html>`)
	assert.Equal(t, "Mac & Cheese", ExtractTitle(doc))
}

func TestExtractTitle_Empty(t *testing.T) {
	doc := parseDoc(t, `<html><head></head><body><p>nothing here</p></body></html>`)
	assert.Equal(t, "", ExtractTitle(doc))
}

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipe":
			w.Write([]byte(`<html><head><meta property="og:title" content="Slow Cooker Chili"/></head></html>`))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	tf := NewTitleFetcher(NewClient())
	ctx := context.Background()

	assert.Equal(t, "Slow Cooker Chili", tf.FetchTitle(ctx, srv.URL+"/recipe"))

	// Fetch failures are swallowed, never raised.
	assert.Equal(t, "", tf.FetchTitle(ctx, srv.URL+"/broken"))
	assert.Equal(t, "", tf.FetchTitle(ctx, "http://127.0.0.1:1/unreachable"))
}

func TestFetchTitle_SetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><head><title>Ok</title></head></html>`))
	}))
	defer srv.Close()

	tf := NewTitleFetcher(NewClient())
	tf.FetchTitle(context.Background(), srv.URL)

	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestClientFinalURL(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/chicken-tacos/?utm_source=newsletter", http.StatusFound)
	}))
	defer redirector.Close()

	c := NewClient()
	final, err := c.FinalURL(context.Background(), redirector.URL+"/track/abc123")
	require.NoError(t, err)

	// Query params and trailing slash are stripped.
	assert.Equal(t, target.URL+"/chicken-tacos", final)
}
