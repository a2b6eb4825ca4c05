package extract

import "strings"

// NormalizeLineEndings rewrites CRLF and bare CR line endings to LF so the
// downstream pattern checks see one line convention regardless of how the
// source document was produced.
func NormalizeLineEndings(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// ReplacementCharRatio returns the fraction of characters in text that are
// Unicode replacement characters (U+FFFD), indicating encoding failures
// during extraction.
func ReplacementCharRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}

	count := 0
	total := 0
	for _, r := range text {
		total++
		if r == '�' {
			count++
		}
	}

	return float64(count) / float64(total)
}

// IsLikelyGarbled reports whether extracted text looks like garbage rather
// than readable content: a high share of single-character words among the
// first words usually means the extractor mangled the page's font encoding.
func IsLikelyGarbled(text string) bool {
	words := strings.Fields(text)
	if len(words) < 20 {
		return false
	}

	sampleSize := min(50, len(words))
	singleCharWords := 0
	for _, w := range words[:sampleSize] {
		if len(w) == 1 {
			r := rune(w[0])
			// Exclude characters that legitimately stand alone in prose.
			if r != '.' && r != '-' && r != ':' && r != 'y' && r != 'o' && r != 'a' {
				singleCharWords++
			}
		}
	}

	return float64(singleCharWords)/float64(sampleSize) > 0.4
}
