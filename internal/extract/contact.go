package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxFooterChars  = 500
	maxButtonLength = 60
)

// contactKeywordRe matches contact-intent labels on buttons and links,
// including the Hungarian equivalents found across target sites.
var contactKeywordRe = regexp.MustCompile(`(?i)\b(contact|call us|call|email|get in touch|kapcsolat|el[eé]rhet[oő]s[eé]g|h[ií]vjon|[ií]rjon|telefon|ajánlatk[eé]r[eé]s)\b`)

// ContactLines collects explicit contact affordances from a page: mailto:
// and tel: anchor targets (paired with their visible label when it differs
// from the raw address), short button-like elements with contact-intent
// text, and footer text truncated to keep boilerplate out of the index.
func ContactLines(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var lines []string

	doc.Find(`a[href^="mailto:"], a[href^="tel:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(strings.TrimPrefix(href, "mailto:"), "tel:")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		label := collapseSpace(sel.Text())
		if label != "" && !strings.EqualFold(label, addr) {
			lines = appendUnique(lines, seen, label+": "+addr)
		} else {
			lines = appendUnique(lines, seen, addr)
		}
	})

	doc.Find("a, button").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if text == "" || len([]rune(text)) > maxButtonLength {
			return
		}
		if contactKeywordRe.MatchString(text) {
			lines = appendUnique(lines, seen, text)
		}
	})

	doc.Find(`footer, [role="contentinfo"]`).Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if text == "" {
			return
		}
		lines = appendUnique(lines, seen, truncate(text, maxFooterChars))
	})

	return lines
}

// truncate caps s at max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
