package export

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffSummary is a line-level comparison of two document versions
type DiffSummary struct {
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Unified    string `json:"unified"`
}

// DiffVersions compares two documents line by line. Unified prefixes each
// line with "+", "-" or a space.
func DiffVersions(before, after string) DiffSummary {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var summary DiffSummary
	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				summary.Insertions++
			case diffmatchpatch.DiffDelete:
				summary.Deletions++
			}
			sb.WriteString(prefix + line + "\n")
		}
	}
	summary.Unified = sb.String()
	return summary
}

// splitLines splits on newlines, dropping the empty tail after a final newline
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
