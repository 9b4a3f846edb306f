// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, ending in "..." when cut
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// scoreBar renders a ten-cell bar for score out of maxScore
func scoreBar(score, maxScore int) string {
	filled := 0
	if maxScore > 0 {
		filled = max(0, min(10, score*10/maxScore))
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// PrintValidationResult outputs the total, each dimension and the leading issues and strengths.
func (p *Printer) PrintValidationResult(result *types.ValidationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	if result.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:  %s\n", result.Title))
	}
	sb.WriteString(fmt.Sprintf("Total:  %d/%d\n", result.TotalScore, result.MaxScore))
	if result.PenaltyApplied {
		sb.WriteString("⚠ Score capped at 50 (weak Internal FAQ)\n")
	}
	sb.WriteString("\n")

	for _, d := range result.Dimensions() {
		sb.WriteString(fmt.Sprintf("%-22s %s %2d/%d\n", d.Name, scoreBar(d.Result.Score, d.Result.MaxScore), d.Result.Score, d.Result.MaxScore))
	}

	writeList(&sb, "Issues:", "✗", result.Issues)
	writeList(&sb, "Strengths:", "✓", result.Strengths)

	p.printBox("PR-FAQ VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, heading, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + heading + "\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s %s\n", bullet, items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintProjects outputs one line per stored project.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProjects(projects []types.Project) {
	if len(projects) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO PROJECTS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, proj := range projects {
		score := "-"
		if proj.LatestScore != nil {
			score = fmt.Sprintf("%d", *proj.LatestScore)
		}
		phase := fmt.Sprintf("phase %d", proj.CurrentPhase)
		if proj.IsComplete() {
			phase = "complete"
		}
		sb.WriteString(fmt.Sprintf("%s\n  %s\n", proj.Name, proj.ID))
		sb.WriteString(fmt.Sprintf("  %s, score %s\n", phase, score))
		if i < len(projects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}
