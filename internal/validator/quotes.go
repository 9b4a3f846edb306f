package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minQuoteRunes filters out contractions, short asides, and emphasis
const minQuoteRunes = 20

// Quote patterns in scan order. Each scans the whole text independently, so the
// output is grouped by glyph style rather than by document position.
var quotePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`“([^”]+)”`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`‘([^’]+)’`),
}

// ExtractQuotes returns quoted passages longer than 20 characters.
// Order is pattern order, then match order within each pattern.
func ExtractQuotes(text string) []string {
	quotes := []string{}
	if text == "" {
		return quotes
	}

	for _, re := range quotePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			inner := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(inner) > minQuoteRunes {
				quotes = append(quotes, inner)
			}
		}
	}
	return quotes
}
