package mail

import (
	"regexp"
	"strings"
)

// Extraction patterns for references a support agent cares about: contact
// addresses, links, and ticket identifiers ("#2025-091", "INC-4482").
var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlRe   = regexp.MustCompile(`https?://[^\s<>"')\]]+`)
	idRe    = regexp.MustCompile(`#[0-9]{4}-[0-9]{2,}|\b[A-Z]{2,}-[0-9]{2,}\b`)
)

// ExtractEmails returns the distinct e-mail addresses found in text, in
// order of first appearance.
func ExtractEmails(text string) []string {
	return dedup(emailRe.FindAllString(text, -1))
}

// ExtractURLs returns the distinct http/https links found in text.
// Sentence-final punctuation is not part of the link.
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.TrimRight(m, ".,;:!?")
	}
	return dedup(matches)
}

// ExtractIDs returns the distinct ticket-style references found in text.
func ExtractIDs(text string) []string {
	return dedup(idRe.FindAllString(text, -1))
}

func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
