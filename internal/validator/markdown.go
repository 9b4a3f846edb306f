package validator

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	h1Re           = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
	pressReleaseRe = regexp.MustCompile(`(?im)^##[ \t]*press[ \t]+release\b.*$`)

	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`([^`\n]+)`")
	imageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headerRe      = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	hrRe          = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	boldStarRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldUnderRe   = regexp.MustCompile(`__([^_]+)__`)
	italicStarRe  = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnderRe = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	blockquoteRe  = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	bulletRe      = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedRe    = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

	paragraphSplitRe = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// ExtractTitle returns the document headline: the first H1, else the first
// non-empty line after a "## Press Release" marker, else "".
func ExtractTitle(markdown string) string {
	if m := h1Re.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}

	loc := pressReleaseRe.FindStringIndex(markdown)
	if loc == nil {
		return ""
	}
	for _, line := range strings.Split(markdown[loc[1]:], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "# ")
		line = boldStarRe.ReplaceAllString(line, "$1")
		line = boldUnderRe.ReplaceAllString(line, "$1")
		return strings.TrimSpace(line)
	}
	return ""
}

// StripMarkdown removes markdown syntax and returns analyzable plain text with
// paragraphs separated by single blank lines.
func StripMarkdown(markdown string) string {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")

	text = fencedCodeRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headerRe.ReplaceAllString(text, "")
	text = hrRe.ReplaceAllString(text, "")
	text = blockquoteRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = numberedRe.ReplaceAllString(text, "")
	text = boldStarRe.ReplaceAllString(text, "$1")
	text = boldUnderRe.ReplaceAllString(text, "$1")
	text = italicStarRe.ReplaceAllString(text, "$1")
	text = italicUnderRe.ReplaceAllString(text, "$1")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// splitParagraphs splits text on blank lines, dropping empty paragraphs
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// leadParagraph returns the first paragraph longer than 50 characters
func leadParagraph(paragraphs []string) (string, bool) {
	for _, p := range paragraphs {
		if utf8.RuneCountInString(p) > 50 {
			return p, true
		}
	}
	return "", false
}

// splitSentences splits text on terminal punctuation, dropping fragments without words
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); len(strings.Fields(s)) > 0 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// roundHalfUp rounds to the nearest integer with .5 going up
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// rescale maps a raw sub-score total onto a dimension's published scale
func rescale(raw, rawMax, scale int) int {
	return roundHalfUp(float64(raw) * float64(scale) / float64(rawMax))
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// uniqueMatches returns the distinct lowercase matches of re in text, in first-seen order
func uniqueMatches(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllString(text, -1) {
		m = strings.ToLower(m)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
