package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCrawl_FollowsLinksBreadthFirst(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/":      `<a href="/a">a</a><a href="/b">b</a>`,
		"/a":     `<a href="/deep">deep</a>`,
		"/b":     `no links here`,
		"/deep":  `<a href="/">home</a>`,
	})

	c := New(NewFetcher(5 * time.Second))
	pages := c.Crawl(context.Background(), srv.URL+"/", 10, true)

	require.Len(t, pages, 4)
	assert.Equal(t, srv.URL+"/", pages[0].URL)
	assert.Equal(t, srv.URL+"/a", pages[1].URL)
	assert.Equal(t, srv.URL+"/b", pages[2].URL)
	assert.Equal(t, srv.URL+"/deep", pages[3].URL)
}

func TestCrawl_RespectsMaxPages(t *testing.T) {
	// Every page links to a fresh URL, so only the cap can stop the crawl.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/next">next</a>`, r.URL.Path)
	}))
	defer srv.Close()

	c := New(NewFetcher(5 * time.Second))
	pages := c.Crawl(context.Background(), srv.URL+"/start", 3, true)

	assert.Len(t, pages, 3)
}

func TestCrawl_FetchFailureIsNonFatal(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/":    `<a href="/missing">gone</a><a href="/ok">ok</a>`,
		"/ok":  `fine`,
	})

	c := New(NewFetcher(5 * time.Second))
	pages := c.Crawl(context.Background(), srv.URL+"/", 10, true)

	require.Len(t, pages, 2)
	assert.Equal(t, srv.URL+"/ok", pages[1].URL)
}

func TestCrawl_DoesNotRevisit(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `<a href="/">self</a><a href="/">self again</a>`)
	}))
	defer srv.Close()

	c := New(NewFetcher(5 * time.Second))
	c.Crawl(context.Background(), srv.URL+"/", 10, true)

	assert.Equal(t, 1, hits)
}

func TestFetcher_RejectsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "HTTP 503")
}

func TestFetcher_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}
