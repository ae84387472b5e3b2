package lexical

// minTokenLen excludes short function words ("un", "de", "la") from
// overlap scoring.
const minTokenLen = 3

// stemSet collects the distinct stems of all qualifying tokens in text.
func stemSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		if len([]rune(tok)) < minTokenLen {
			continue
		}
		set[Stem(tok)] = struct{}{}
	}
	return set
}

// Score returns the size of the stem-set intersection between query and
// text, counting only tokens of at least three runes. Duplicates collapse;
// the overlap is not weighted by frequency or length. Returns 0 when the
// query yields no qualifying stems.
func Score(query, text string) int {
	queryStems := stemSet(query)
	if len(queryStems) == 0 {
		return 0
	}
	textStems := stemSet(text)

	n := 0
	for stem := range queryStems {
		if _, ok := textStems[stem]; ok {
			n++
		}
	}
	return n
}
