// Package chunker splits extracted text into bounded-length, paragraph-aware
// fragments for embedding.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxChars is the default chunk size bound.
const DefaultMaxChars = 1500

var paragraphSplitRe = regexp.MustCompile(`\n{2,}`)

// Chunk splits text into an ordered sequence of fragments, each at most
// maxChars runes long. Paragraphs (blank-line separated) are packed
// greedily; a paragraph that alone exceeds the bound is sliced into
// consecutive fixed-size pieces. Every emitted chunk is trimmed and
// non-empty; empty input yields nil. Deterministic, pure.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks []string
	var cur string

	flush := func() {
		if trimmed := strings.TrimSpace(cur); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		cur = ""
	}

	for _, para := range paragraphSplitRe.Split(text, -1) {
		runes := []rune(para)

		if len(runes) > maxChars {
			flush()
			for i := 0; i < len(runes); i += maxChars {
				end := i + maxChars
				if end > len(runes) {
					end = len(runes)
				}
				if piece := strings.TrimSpace(string(runes[i:end])); piece != "" {
					chunks = append(chunks, piece)
				}
			}
			continue
		}

		if len([]rune(cur))+len("\n\n")+len(runes) > maxChars {
			flush()
			cur = para
			continue
		}

		if cur == "" {
			cur = para
		} else {
			cur += "\n\n" + para
		}
	}
	flush()

	return chunks
}
