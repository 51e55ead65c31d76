package corpus

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Chunk splits text into overlapping fixed-size windows. Whitespace is
// collapsed to single spaces first; the window advances by
// max(1, size-overlap) so the loop always terminates, and the final window
// may be shorter than size. Empty or whitespace-only input yields nil.
func Chunk(text string, size, overlap int) []string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 1
	}

	step := size - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for i := 0; i < len(text); i += step {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks
}
