package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pressRelease = `# AcmeCorp Launches DataSync, Cutting Migration Time by 75%

SEATTLE, WA — March 15, 2025 — AcmeCorp today announced DataSync, a managed service that cuts warehouse migration time by 75% and eliminates the painful manual copying that data teams struggle with, which means dashboards stay online.

Additionally, DataSync validates every row during the move. For example, a pilot showed 300 customers finished migrations in 4 days instead of 6 weeks, according to Gartner.

"DataSync cut our migration window by 80% and saved us $2 million in the first quarter," said Priya Shah, VP of Data at Globex.

"We moved 12,000 tables in 3 days with zero downtime for our 500 users," said Marco Diaz, a data engineer at Initech.

About AcmeCorp: AcmeCorp builds data infrastructure. For more information, visit acme.com.
`

const externalFAQ = `## FAQ

**Q: How much does DataSync cost?**
A: It is priced per terabyte moved.

**Q: Which warehouses are supported?**
A: Snowflake, BigQuery, and Redshift.

**Q: How long does setup take?**
A: Under an hour.

**Q: Is my data encrypted in transit?**
A: Yes, with TLS 1.3.

**Q: Can I pause a migration?**
A: Yes, from the console.
`

func fullDocument() string {
	return pressRelease + "\n" + externalFAQ + "\n" + hardInternalFAQ
}

func assertBounds(t *testing.T, result types.ValidationResult) {
	t.Helper()
	assert.GreaterOrEqual(t, result.TotalScore, 0)
	assert.LessOrEqual(t, result.TotalScore, types.MaxTotalScore)
	for _, d := range result.Dimensions() {
		assert.GreaterOrEqual(t, d.Result.Score, 0, d.Key)
		assert.LessOrEqual(t, d.Result.Score, d.Result.MaxScore, d.Key)
		for name, sub := range d.Result.Breakdown {
			assert.GreaterOrEqual(t, sub.Score, 0, name)
			assert.LessOrEqual(t, sub.Score, sub.MaxScore, name)
		}
	}
}

func TestValidatePRFAQ_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		result := ValidatePRFAQ(input)

		assert.Equal(t, 0, result.TotalScore)
		assert.Equal(t, 100, result.MaxScore)
		assert.False(t, result.PenaltyApplied)
		for _, d := range result.Dimensions() {
			assert.Equal(t, 0, d.Result.Score, d.Key)
			assert.Equal(t, []string{"No content to analyze"}, d.Result.Issues, d.Key)
		}
	}
}

func TestValidatePRFAQ_Deterministic(t *testing.T) {
	doc := fullDocument()
	assert.Equal(t, ValidatePRFAQ(doc), ValidatePRFAQ(doc))
}

func TestValidatePRFAQ_ScoreBounds(t *testing.T) {
	inputs := []string{
		fullDocument(),
		pressRelease,
		"#",
		"**",
		"Q:",
		`"""`,
		strings.Repeat("—", 50),
		"## FAQ\n## Internal FAQ",
		strings.Repeat("revolutionary delve tapestry ", 200),
		"# " + strings.Repeat("word ", 300),
	}

	for _, input := range inputs {
		assertBounds(t, ValidatePRFAQ(input))
	}
}

func TestValidatePRFAQ_FullDocument(t *testing.T) {
	result := ValidatePRFAQ(fullDocument())

	assert.Equal(t, "AcmeCorp Launches DataSync, Cutting Migration Time by 75%", result.Title)
	assert.False(t, result.PenaltyApplied)
	assert.Equal(t, 5, result.FAQQuality.ExternalCount)
	assert.Equal(t, 3, result.FAQQuality.InternalCount)
	assert.Equal(t, 3, result.FAQQuality.HardQuestionCount)
	assert.Equal(t, 10, result.Structure.Breakdown["headline"].Score)
	assert.Equal(t, 2, result.Evidence.Quotes)

	sum := 0
	for _, d := range result.Dimensions() {
		sum += d.Result.Score
	}
	assert.Equal(t, sum, result.TotalScore)
	assert.Greater(t, result.TotalScore, 50)
}

func TestValidatePRFAQ_PenaltyWithoutInternalFAQ(t *testing.T) {
	result := ValidatePRFAQ(pressRelease + "\n" + externalFAQ)

	assert.Equal(t, 0, result.FAQQuality.InternalCount)
	assert.LessOrEqual(t, result.TotalScore, 50)

	sum := 0
	for _, d := range result.Dimensions() {
		sum += d.Result.Score
	}
	require.Greater(t, sum, 50)
	assert.True(t, result.PenaltyApplied)
	assert.Equal(t, 50, result.TotalScore)
	assert.Equal(t, PenaltyWarning, result.Issues[0])
}

func TestValidatePRFAQ_NoPenaltyAtOrBelowCap(t *testing.T) {
	result := ValidatePRFAQ("Just a short note about nothing in particular.")

	assert.LessOrEqual(t, result.TotalScore, 50)
	assert.False(t, result.PenaltyApplied)
	assert.NotContains(t, result.Issues, PenaltyWarning)
}

func TestValidatePRFAQ_DedupesIssues(t *testing.T) {
	result := ValidatePRFAQ(pressRelease)

	seen := map[string]bool{}
	for _, issue := range result.Issues {
		assert.False(t, seen[issue], "duplicate issue %q", issue)
		seen[issue] = true
	}
	assert.NotNil(t, result.Strengths)
}

func TestValidateBatch_PreservesOrder(t *testing.T) {
	docs := []string{fullDocument(), "", pressRelease, "## FAQ\nQ: Why?\nA: Because."}

	results, err := ValidateBatch(context.Background(), docs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	for i, doc := range docs {
		assert.Equal(t, ValidatePRFAQ(doc), results[i])
	}
}

func TestValidateBatch_DefaultsWorkers(t *testing.T) {
	results, err := ValidateBatch(context.Background(), []string{pressRelease, pressRelease}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestValidateBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ValidateBatch(ctx, []string{pressRelease, pressRelease, pressRelease}, 2)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
