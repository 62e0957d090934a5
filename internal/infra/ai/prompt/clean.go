package prompt

import (
	"regexp"
	"strings"
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// CleanText normalizes line breaks and drops ASCII control characters except
// newline and tab before text is sent to a model.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return controlChars.ReplaceAllString(text, "")
}

var fenceOpeners = []string{"```json\n", "```json", "```html\n", "```html", "```\n", "```"}

// StripFences removes the markdown code fence a model sometimes wraps around
// its answer. A missing closing fence (truncated output) is tolerated.
func StripFences(s string) string {
	text := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n"))
	for _, open := range fenceOpeners {
		if strings.HasPrefix(text, open) {
			text = text[len(open):]
			break
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Truncate cuts s to at most max runes. It reports whether anything was cut.
func Truncate(s string, max int) (string, bool) {
	if max <= 0 {
		return s, false
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}
