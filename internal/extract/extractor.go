// Package extract turns raw page markup into clean narrative text suitable
// for chunking and embedding. The main pass is a readability-style content
// extraction; two heuristic scans append contact and pricing details that
// readability tends to drop with the boilerplate.
package extract

import (
	"bytes"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

var trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)

// Content is the extracted text of one page.
type Content struct {
	Title string
	Text  string
}

// Extract produces the best-effort main text of a page plus optional
// contact and pricing sections. It returns ok=false when the page yields no
// usable text; malformed or script-only markup never produces an error,
// only no content.
func Extract(htmlBody []byte, pageURL string) (*Content, bool) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBody), parsedURL)
	if err != nil {
		log.Printf("extract: unreadable page %s: %v", pageURL, err)
		return nil, false
	}

	text := cleanText(article.TextContent)
	if text == "" {
		return nil, false
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL
	}

	// The heuristic scans run over the full document, not the readability
	// output: contact and pricing affordances usually live in the parts
	// readability strips.
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody)); err == nil {
		if lines := ContactLines(doc); len(lines) > 0 {
			text += "\n\nContact:\n" + strings.Join(lines, "\n")
		}
		if lines := PricingLines(doc); len(lines) > 0 {
			text += "\n\nPricing:\n" + strings.Join(lines, "\n")
		}
	}

	return &Content{Title: title, Text: text}, true
}

// cleanText normalizes extracted text: trailing per-line whitespace goes,
// as does surrounding whitespace.
func cleanText(text string) string {
	return strings.TrimSpace(trailingSpaceRe.ReplaceAllString(text, "\n"))
}

// collapseSpace reduces any whitespace run to a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// appendUnique appends line to lines unless an identical line is already
// present, preserving first-seen order.
func appendUnique(lines []string, seen map[string]bool, line string) []string {
	if line == "" || seen[line] {
		return lines
	}
	seen[line] = true
	return append(lines, line)
}
