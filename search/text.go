package search

import "regexp"

// numberedLineRe matches a "numbered step" line: an integer, a period,
// then whitespace, at the start of any line.
var numberedLineRe = regexp.MustCompile(`(?m)^\s*\d+\.\s`)

// hasNumberedStep reports whether any line of text looks like a numbered
// procedure step ("1. Ouvrir la console…").
func hasNumberedStep(text string) bool {
	return numberedLineRe.MatchString(text)
}
