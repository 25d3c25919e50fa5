// Package crawler implements a bounded breadth-first site crawler that
// yields raw pages for content extraction.
package crawler

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cloo-solutions/sitechat/internal/domain"
)

const (
	// DefaultUserAgent identifies the crawler to target sites.
	DefaultUserAgent = "SitechatBot/1.0 (+https://github.com/cloo-solutions/sitechat)"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 10 << 20 // 10 MiB per page
	maxRedirects   = 5
)

// Fetcher retrieves a single page's markup over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher with an explicit per-request timeout and a
// redirect cap. A zero timeout falls back to the default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (max %d)", maxRedirects)
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
	}
}

// Fetch retrieves the markup at urlStr. Any non-2xx status is an error; the
// body is capped at maxBodyBytes.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("content too large (exceeds %d bytes)", maxBodyBytes)
	}

	return body, nil
}

// Crawler walks a site breadth-first from a seed URL.
type Crawler struct {
	fetcher *Fetcher
}

// New creates a crawler backed by the given fetcher.
func New(fetcher *Fetcher) *Crawler {
	return &Crawler{fetcher: fetcher}
}

// Crawl performs a sequential breadth-first traversal from seed, visiting at
// most maxPages distinct URLs. A failed fetch is logged and skipped; the
// crawl as a whole never aborts because one page failed. Termination is
// guaranteed by the visited set combined with the page cap, even against a
// site with unbounded distinct URLs.
func (c *Crawler) Crawl(ctx context.Context, seed string, maxPages int, sameHostOnly bool) []domain.Page {
	queue := []string{seed}
	visited := make(map[string]bool, maxPages)
	var pages []domain.Page

	for len(queue) > 0 && len(visited) < maxPages {
		urlStr := queue[0]
		queue = queue[1:]

		if visited[urlStr] {
			continue
		}
		visited[urlStr] = true

		body, err := c.fetcher.Fetch(ctx, urlStr)
		if err != nil {
			log.Printf("crawl: skip %s: %v", urlStr, err)
			continue
		}

		pages = append(pages, domain.Page{URL: urlStr, HTML: body})

		for _, link := range ExtractLinks(body, urlStr, sameHostOnly) {
			if !visited[link] {
				queue = append(queue, link)
			}
		}
	}

	return pages
}
