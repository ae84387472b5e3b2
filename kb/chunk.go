package kb

import "strings"

// DefaultMaxChunkLen bounds chunk size in runes.
const DefaultMaxChunkLen = 600

// ChunkText splits a document into ordered, non-empty chunks of at most
// maxLen runes. Text is split on blank-line paragraph boundaries first;
// any paragraph still exceeding maxLen is hard-wrapped into consecutive
// fixed-size rune slices with no word-boundary awareness. Whitespace-only
// paragraphs are dropped. maxLen values below 1 fall back to
// DefaultMaxChunkLen.
func ChunkText(text string, maxLen int) []string {
	if maxLen < 1 {
		maxLen = DefaultMaxChunkLen
	}

	var chunks []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		runes := []rune(para)
		for len(runes) > maxLen {
			head := strings.TrimSpace(string(runes[:maxLen]))
			if head != "" {
				chunks = append(chunks, head)
			}
			runes = runes[maxLen:]
		}
		if rest := strings.TrimSpace(string(runes)); rest != "" {
			chunks = append(chunks, rest)
		}
	}
	return chunks
}
