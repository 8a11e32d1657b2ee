package filter

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Highlight HTML-escapes text and wraps every keyword longer than two characters in <mark>.
// Matching is case-insensitive; keywords are split on whitespace.
func Highlight(text, keywords string) template.HTML {
	var words []string
	for _, w := range strings.Fields(keywords) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) == 0 || text == "" {
		return template.HTML(html.EscapeString(text))
	}

	pattern := regexp.MustCompile(`(?i)` + strings.Join(words, "|"))
	var b strings.Builder
	last := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString("</mark>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return template.HTML(b.String())
}

// Preview truncates text to n runes, appending an ellipsis when cut.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
