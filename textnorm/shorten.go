package textnorm

import "strings"

// Shorten collapses whitespace runs and truncates text at a word boundary so
// that the result, including the placeholder, fits within width.
func Shorten(text string, width int, placeholder string) string {
	words := strings.Fields(text)
	joined := strings.Join(words, " ")
	if len(joined) <= width {
		return joined
	}
	for len(words) > 0 {
		words = words[:len(words)-1]
		candidate := strings.Join(words, " ")
		if len(candidate)+len(placeholder) <= width {
			return candidate + placeholder
		}
	}
	return strings.TrimSpace(placeholder)
}
