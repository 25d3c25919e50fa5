package crawler

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipExtensions lists path suffixes that never hold document markup.
var skipExtensions = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".zip": true, ".mp4": true, ".mp3": true, ".webp": true,
	".ico": true, ".css": true, ".js": true, ".woff": true, ".woff2": true,
	".ttf": true, ".eot": true,
}

// ExtractLinks pulls hyperlink targets out of a page, resolves them against
// the base URL, and filters them down to crawlable document URLs: absolute
// http(s), fragment stripped, non-document resource extensions excluded,
// and optionally restricted to the base URL's host.
//
// The result preserves document order and may contain duplicates; the
// crawler's visited set deduplicates across calls.
func ExtractLinks(htmlBody []byte, base string, sameHostOnly bool) []string {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved := resolveLink(baseURL, href, sameHostOnly)
		if resolved != "" {
			links = append(links, resolved)
		}
	})
	return links
}

// resolveLink resolves one href against the base URL, returning "" when the
// link is not a crawlable document URL.
func resolveLink(base *url.URL, href string, sameHostOnly bool) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if sameHostOnly && u.Host != base.Host {
		return ""
	}
	if skipExtensions[strings.ToLower(path.Ext(u.Path))] {
		return ""
	}

	u.Fragment = ""
	return u.String()
}
