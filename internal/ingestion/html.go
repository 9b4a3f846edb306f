package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "h1, h2, h3, h4, p, li, blockquote, pre"

var whitespaceRe = regexp.MustCompile(`\s+`)

// HTMLToMarkdown converts an HTML document into the markdown subset the
// validator understands: headings, paragraphs, list items, blockquotes,
// code blocks, and bold or italic emphasis.
func HTMLToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ConversionError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer").Remove()

	var b strings.Builder
	prevList := false
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Blocks nested in a list item or quote are rendered by their container
		if s.ParentsFiltered("li, blockquote").Length() > 0 {
			return
		}

		block, isList := renderBlock(s)
		if block == "" {
			return
		}
		if b.Len() > 0 {
			if isList && prevList {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(block)
		prevList = isList
	})

	if b.Len() == 0 {
		return collapseSpaces(doc.Find("body").Text()), nil
	}
	return b.String(), nil
}

// blockElements start a new segment when nested inside a list item or quote
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// renderBlock returns the markdown for one block element and whether it is a list item
func renderBlock(s *goquery.Selection) (string, bool) {
	name := goquery.NodeName(s)
	switch name {
	case "pre":
		code := strings.Trim(s.Text(), "\n")
		if strings.TrimSpace(code) == "" {
			return "", false
		}
		return "```\n" + code + "\n```", false
	case "li":
		return renderListItem(s, 0), true
	case "blockquote":
		parts := blockSegments(s, false)
		for i, part := range parts {
			parts[i] = "> " + strings.ReplaceAll(part, "\n", "\n> ")
		}
		return strings.Join(parts, "\n>\n"), false
	}

	text := collapseSpaces(inlineMarkdown(s))
	if text == "" {
		return "", false
	}

	switch name {
	case "h1":
		return "# " + text, false
	case "h2":
		return "## " + text, false
	case "h3":
		return "### " + text, false
	case "h4":
		return "#### " + text, false
	default:
		return text, false
	}
}

// renderListItem renders li as a "- " line followed by its nested list items,
// each level indented by two spaces.
func renderListItem(li *goquery.Selection, depth int) string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	if text := strings.Join(blockSegments(li, true), " "); text != "" {
		lines = append(lines, indent+"- "+text)
	}
	li.ChildrenFiltered("ul, ol").ChildrenFiltered("li").Each(func(_ int, c *goquery.Selection) {
		if item := renderListItem(c, depth+1); item != "" {
			lines = append(lines, item)
		}
	})
	return strings.Join(lines, "\n")
}

// blockSegments renders the children of s as separate segments, starting a new
// one at every block-level child. Nested lists become "- " items unless
// skipLists is set, in which case the caller renders them.
func blockSegments(s *goquery.Selection, skipLists bool) []string {
	var segments []string
	var cur strings.Builder
	flush := func() {
		if text := collapseSpaces(cur.String()); text != "" {
			segments = append(segments, text)
		}
		cur.Reset()
	}

	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "ul" || name == "ol":
			flush()
			if skipLists {
				return
			}
			c.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if item := renderListItem(li, 0); item != "" {
					segments = append(segments, item)
				}
			})
		case blockElements[name]:
			flush()
			segments = append(segments, blockSegments(c, skipLists)...)
		default:
			writeInline(&cur, c)
		}
	})
	flush()
	return segments
}

// inlineMarkdown renders the text of s, keeping bold and italic emphasis
func inlineMarkdown(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		writeInline(&b, c)
	})
	return b.String()
}

func writeInline(b *strings.Builder, c *goquery.Selection) {
	name := goquery.NodeName(c)
	switch name {
	case "#text":
		b.WriteString(c.Text())
	case "strong", "b":
		if inner := collapseSpaces(inlineMarkdown(c)); inner != "" {
			b.WriteString("**" + inner + "**")
		}
	case "em", "i":
		if inner := collapseSpaces(inlineMarkdown(c)); inner != "" {
			b.WriteString("*" + inner + "*")
		}
	case "br":
		b.WriteString(" ")
	default:
		if blockElements[name] || name == "ul" || name == "ol" {
			b.WriteString(" " + inlineMarkdown(c) + " ")
			return
		}
		b.WriteString(inlineMarkdown(c))
	}
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
