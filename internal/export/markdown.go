// Package export renders projects as downloadable markdown and diffs saved versions.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/bordenet/pr-faq-assistant/internal/workflow"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultFilename = "prfaq.md"
	maxSummaryIssue = 5
	maxSlugLength   = 80
)

var (
	slugSeparatorRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	leadingH1Re     = regexp.MustCompile(`^#[ \t]+\S`)
	lowerCaser      = cases.Lower(language.Und)
)

// Title returns the heading for an exported project
func Title(p *types.Project, result *types.ValidationResult) string {
	if result != nil && result.Title != "" {
		return result.Title
	}
	if name := strings.TrimSpace(p.Fields[types.FieldProductName]); name != "" {
		return name
	}
	return strings.TrimSpace(p.Name)
}

// Markdown renders the project's final document. When result is non-nil a
// "## Validation Summary" section is appended.
func Markdown(p *types.Project, result *types.ValidationResult) string {
	var sb strings.Builder

	doc := strings.TrimSpace(workflow.FinalDocument(p))
	if !leadingH1Re.MatchString(doc) {
		if title := Title(p, result); title != "" {
			sb.WriteString("# " + title + "\n\n")
		}
	}
	if doc != "" {
		sb.WriteString(doc)
		sb.WriteString("\n")
	}

	if result != nil {
		sb.WriteString("\n")
		writeSummary(&sb, result)
	}
	return sb.String()
}

func writeSummary(sb *strings.Builder, result *types.ValidationResult) {
	sb.WriteString("## Validation Summary\n\n")
	fmt.Fprintf(sb, "**Total Score:** %d/%d\n", result.TotalScore, result.MaxScore)
	if result.PenaltyApplied {
		sb.WriteString("\n> Score capped: the Internal FAQ is missing or avoids hard questions.\n")
	}

	sb.WriteString("\n| Dimension | Score |\n|---|---|\n")
	for _, d := range result.Dimensions() {
		fmt.Fprintf(sb, "| %s | %d/%d |\n", d.Name, d.Result.Score, d.Result.MaxScore)
	}

	if len(result.Issues) > 0 {
		sb.WriteString("\n### Top Issues\n\n")
		issues := result.Issues
		if len(issues) > maxSummaryIssue {
			issues = issues[:maxSummaryIssue]
		}
		for _, issue := range issues {
			sb.WriteString("- " + issue + "\n")
		}
	}
}

// Filename returns a lowercase slug of the project title with a .md suffix
func Filename(p *types.Project) string {
	slug := lowerCaser.String(Title(p, nil))
	slug = strings.Trim(slugSeparatorRe.ReplaceAllString(slug, "-"), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(truncateRunes(slug, maxSlugLength), "-")
	}
	if slug == "" {
		return defaultFilename
	}
	return slug + ".md"
}

// truncateRunes cuts s to at most n bytes without splitting a rune
func truncateRunes(s string, n int) string {
	end := 0
	for i, r := range s {
		if i+utf8.RuneLen(r) > n {
			break
		}
		end = i + utf8.RuneLen(r)
	}
	return s[:end]
}
