// Package pdf provides the layout primitives for generated clinical
// documents: metric-based greedy word wrapping, an explicit page cursor with
// multi-page continuation, and the template overlay pass stamped onto
// finished documents.
package pdf

import "strings"

// MeasureFunc returns the rendered width of s in the active font. Wrapping
// decisions use real font metrics, never character counts, so proportional
// fonts wrap correctly.
type MeasureFunc func(s string) float64

// WrapParagraph splits a single paragraph into lines no wider than maxWidth.
// Words are accumulated greedily: the candidate line is measured before each
// word is added and flushed when the word would push it past maxWidth. A
// single word wider than maxWidth is hard-broken by rune so that every
// returned line still measures within the limit.
func WrapParagraph(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line string

	flush := func() {
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
	}

	for _, word := range words {
		if measure(word) > maxWidth {
			flush()
			lines = append(lines, breakWord(word, maxWidth, measure)...)
			continue
		}

		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			flush()
			line = word
		} else {
			line = candidate
		}
	}
	flush()

	return lines
}

// SplitParagraphs splits text on explicit newlines. Each paragraph is
// wrapped independently by the caller, with extra vertical spacing in
// between.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// breakWord splits an over-long word into rune chunks that each fit within
// maxWidth. The final chunk may be a single rune even if that rune alone
// exceeds maxWidth; there is nothing smaller to emit.
func breakWord(word string, maxWidth float64, measure MeasureFunc) []string {
	var chunks []string
	var chunk []rune

	for _, r := range word {
		candidate := append(chunk, r)
		if len(chunk) > 0 && measure(string(candidate)) > maxWidth {
			chunks = append(chunks, string(chunk))
			chunk = []rune{r}
			continue
		}
		chunk = candidate
	}
	if len(chunk) > 0 {
		chunks = append(chunks, string(chunk))
	}
	return chunks
}
