package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxPriceLineChars = 180

var (
	// priceContainerRe matches class/id attribute values that suggest a
	// pricing block, including Hungarian naming.
	priceContainerRe = regexp.MustCompile(`(?i)\b(price|pricing|plans?|tarifa?|fee|cost|csomag|d[ií]j|[aá]r(ak|lista)?)\b`)

	// currencyAmountRe matches an amount with grouping/decimal separators
	// followed by a currency token.
	currencyAmountRe = regexp.MustCompile(`(?i)\d[\d\s.,]*\s*(Ft|HUF|EUR|USD|GBP|€|\$|£)`)

	// recurringPeriodRe matches subscription-period suffixes like "/month".
	recurringPeriodRe = regexp.MustCompile(`(?i)/\s*(h[oó]($|nap)|month|mo\b|year|[eé]v\b)`)
)

// PricingLines scans a page for price-like text: elements whose class or id
// names a pricing block, plus every link and button, filtered to lines that
// carry a currency amount or a recurring-period marker. Lines are trimmed,
// length-capped, and deduplicated in first-seen order.
func PricingLines(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var lines []string

	collect := func(_ int, sel *goquery.Selection) {
		for _, raw := range strings.Split(sel.Text(), "\n") {
			line := collapseSpace(raw)
			if line == "" {
				continue
			}
			if !currencyAmountRe.MatchString(line) && !recurringPeriodRe.MatchString(line) {
				continue
			}
			lines = appendUnique(lines, seen, truncate(line, maxPriceLineChars))
		}
	}

	doc.Find("[class], [id]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		if class, ok := sel.Attr("class"); ok && priceContainerRe.MatchString(class) {
			return true
		}
		if id, ok := sel.Attr("id"); ok && priceContainerRe.MatchString(id) {
			return true
		}
		return false
	}).Each(collect)

	doc.Find("a, button").Each(collect)

	return lines
}
