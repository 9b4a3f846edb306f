package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"h1", "# Acme Launches DataSync\n\nBody", "Acme Launches DataSync"},
		{"h1 after preamble", "Draft v2\n\n# Real Title\n", "Real Title"},
		{"press release marker", "## Press Release\n\n**Acme Launches DataSync**\n\nBody", "Acme Launches DataSync"},
		{"press release heading line", "## Press Release\n### Acme Cuts Costs\n", "Acme Cuts Costs"},
		{"none", "Just some text\n\nMore text", ""},
		{"h2 is not a title", "## FAQ\n\nQ: why?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.markdown))
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	markdown := "# Title\n\n**Bold** and *italic* with [link](http://x.test) and `code`.\n\n\n\n- item one\n> quoted"

	assert.Equal(t, "Title\n\nBold and italic with link and code.\n\nitem one\nquoted", StripMarkdown(markdown))
}

func TestStripMarkdown_RemovesBlocks(t *testing.T) {
	markdown := "Intro\r\n\r\n```go\nfmt.Println()\n```\r\n\r\n![diagram](d.png)\n\n---\n\n1. First step"

	got := StripMarkdown(markdown)

	assert.NotContains(t, got, "Println")
	assert.NotContains(t, got, "diagram")
	assert.NotContains(t, got, "---")
	assert.NotContains(t, got, "\r")
	assert.Contains(t, got, "First step")
	assert.NotContains(t, got, "1.")
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, 2, roundHalfUp(2.49))
	assert.Equal(t, 10, rescale(15, 30, 20))
	assert.Equal(t, 1, rescale(1, 30, 20))
	assert.Equal(t, 20, rescale(35, 35, 20))
	assert.Equal(t, 0, clamp(-3, 0, 10))
	assert.Equal(t, 10, clamp(12, 0, 10))
}

func TestSplitParagraphsAndSentences(t *testing.T) {
	assert.Equal(t, []string{"One.", "Two."}, splitParagraphs("One.\n\n  \n\nTwo.\n"))
	assert.Equal(t, []string{"First one", "Second one", "Third"}, splitSentences("First one. Second one! Third?"))
	assert.Empty(t, splitSentences("..."))
}
