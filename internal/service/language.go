package service

import "regexp"

var (
	hungarianDiacriticsRe = regexp.MustCompile(`[áéíóöőúüűÁÉÍÓÖŐÚÜŰ]`)
	hungarianMarkersRe    = regexp.MustCompile(`(?i)\b(és|van|vagy|kérlek|ár|nyitvatartás)\b`)
)

// LooksHungarian reports whether a query is likely Hungarian, based on
// characteristic diacritics or common marker words. Deliberately crude: it
// only steers the reply-language instruction, nothing else.
func LooksHungarian(s string) bool {
	return hungarianDiacriticsRe.MatchString(s) || hungarianMarkersRe.MatchString(s)
}
