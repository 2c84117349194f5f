package external

import (
	"html"
	"strings"
)

// Item is a question fetched from an upstream trivia source, normalized to
// plain text.
type Item struct {
	Source     string
	Category   string
	Difficulty string
	Question   string
	Answer     string
}

func unescape(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
