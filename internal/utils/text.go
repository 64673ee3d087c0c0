package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
)

// StripMarkup returns the plain text of an HTML fragment with whitespace
// collapsed. hh.ru wraps search hits in <highlighttext> tags.
func StripMarkup(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpaces(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpaces(fragment)
	}

	return collapseSpaces(doc.Text())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatCount formats an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatSalary formats a monthly salary in roubles, e.g. "185,000 ₽"
func FormatSalary(amount int) string {
	return humanize.Comma(int64(amount)) + " ₽"
}

// Truncate shortens s to at most length runes, adding "..." if necessary
func Truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}
