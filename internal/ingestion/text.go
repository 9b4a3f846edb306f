// Package ingestion reads PR-FAQ documents from disk and normalizes them for scoring.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxBytes is the practical document size limit when none is configured
const DefaultMaxBytes int64 = 1 << 20

var (
	excessBlankLinesRe = regexp.MustCompile(`\n\n\n+`)
	innerSpaceRe       = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText cleans and normalizes text content while preserving markdown structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// Compose accented characters so regex word boundaries see single runes
	content = norm.NFC.String(content)

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if inFence {
			cleanedLines = append(cleanedLines, strings.TrimRight(line, " \t"))
			continue
		}
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Markdown headings lose their indentation
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Indentation is kept for nested lists and blockquotes; inner runs of spaces collapse
	indent := line[:len(line)-len(trimmed)]
	return indent + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	return excessBlankLinesRe.ReplaceAllString(content, "\n\n")
}

// DetectFormat maps a file extension onto a source format
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".text":
		return FormatText
	default:
		return FormatMarkdown
	}
}

// IngestFromFile reads a document with the default size limit
func IngestFromFile(path string) (string, *Metadata, error) {
	return IngestFromFileWithLimit(path, DefaultMaxBytes)
}

// IngestFromFileWithLimit reads a markdown, text, or HTML file, converts HTML to
// markdown, cleans it, and returns the cleaned text with metadata.
// limit <= 0 disables the size check.
func IngestFromFileWithLimit(path string, limit int64) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &FileReadError{Message: fmt.Sprintf("file not found: %s", path), Cause: err}
		}
		return "", nil, &FileReadError{Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", nil, &FileReadError{Message: "failed to stat file", Cause: err}
	}
	if limit > 0 && info.Size() > limit {
		return "", nil, &FileTooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}

	reader := io.Reader(f)
	if limit > 0 {
		reader = io.LimitReader(f, limit+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, &FileReadError{Message: "failed to read file", Cause: err}
	}
	if limit > 0 && int64(len(content)) > limit {
		return "", nil, &FileTooLargeError{Path: path, Size: int64(len(content)), Limit: limit}
	}

	text, format, err := Normalize(string(content), DetectFormat(path))
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(text, path, format), nil
}

// Normalize converts content of the given format to cleaned markdown
func Normalize(content, format string) (string, string, error) {
	if format == FormatHTML {
		markdown, err := HTMLToMarkdown(content)
		if err != nil {
			return "", format, err
		}
		content = markdown
	}
	return CleanText(content), format, nil
}
