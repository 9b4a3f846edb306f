package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bordenet/pr-faq-assistant/internal/ingestion"
	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Acme Launches Ledger to Cut Month-End Close by 40%

SEATTLE, WA - March 3, 2026 - Acme today announced Ledger, a reconciliation
service that reduces month-end close time by 40% for finance teams.

"We closed our books in 3 days instead of 5," said Dana Lee, Controller at Globex.

## External FAQ

**Q: How much does it cost?**
A: $20 per user per month.

## Internal FAQ

**Q: What are the risks?**
A: Adoption depends on ERP integrations.
`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCommand_MissingInputFlag(t *testing.T) {
	_, err := runCLI(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "validate", "--in", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)

	var readErr *ingestion.FileReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestValidateCommand_Summary(t *testing.T) {
	path := writeDoc(t, "prfaq.md", sampleDoc)

	out, err := runCLI(t, "validate", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PR-FAQ VALIDATION")
	assert.Contains(t, out, "Total:")
}

func TestValidateCommand_JSONAndOutFile(t *testing.T) {
	path := writeDoc(t, "prfaq.md", sampleDoc)
	outPath := filepath.Join(t.TempDir(), "nested", "result.json")

	out, err := runCLI(t, "validate", "--in", path, "--json", "--out", outPath)
	require.NoError(t, err)

	var printed types.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &printed))
	assert.Equal(t, types.MaxTotalScore, printed.MaxScore)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var written types.ValidationResult
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, printed.TotalScore, written.TotalScore)
}

func TestValidateCommand_HTMLInput(t *testing.T) {
	path := writeDoc(t, "prfaq.html", "<h1>Acme Launches Ledger</h1><p>Acme today announced Ledger.</p>")

	out, err := runCLI(t, "validate", "--in", path, "--json")
	require.NoError(t, err)

	var result types.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Acme Launches Ledger", result.Title)
}

func TestValidateCommand_MinScore(t *testing.T) {
	path := writeDoc(t, "thin.md", "# Short\n\nNot much here.\n")

	_, err := runCLI(t, "validate", "--in", path, "--min-score", "90")
	require.Error(t, err)

	var minErr *MinScoreError
	require.True(t, errors.As(err, &minErr))
	assert.Equal(t, 90, minErr.MinScore)
	assert.Less(t, minErr.Score, 90)
	assert.Equal(t, exitBelowMinScore, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, exitBelowMinScore, exitCode(&MinScoreError{Score: 10, MinScore: 50}))
}
