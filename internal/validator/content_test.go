package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const leadParagraphFixture = "Acme today launched DataSync, a managed service that moves data between warehouses without downtime, so analytics teams can finish migrations in days instead of months and keep dashboards running the whole time."

func TestAnalyze5Ws_AllPresent(t *testing.T) {
	text := "SEATTLE, WA — Acme Corp today launched DataSync worldwide, which helps data teams migrate because manual copying is slow."

	result := Analyze5Ws(text)

	assert.Equal(t, 15, result.Score)
	assert.Empty(t, result.Issues)
	assert.Equal(t, []string{"Covers all 5 Ws (who, what, when, where, why)"}, result.Strengths)
}

func TestAnalyze5Ws_NoneFound(t *testing.T) {
	result := Analyze5Ws("it is here.")

	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Issues, 5)
	assert.Empty(t, result.Strengths)
}

func TestAnalyzeContentStructure_TooFewParagraphs(t *testing.T) {
	result := AnalyzeContentStructure("One paragraph only.")

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, []string{"Press release needs at least 3 paragraphs (lead, body, closing)"}, result.Issues)
}

func TestAnalyzeContentStructure_ThreeParagraphs(t *testing.T) {
	text := leadParagraphFixture + "\n\nAdditionally, DataSync validates every row.\n\nAbout Acme: visit acme.com for more information."

	result := AnalyzeContentStructure(text)

	assert.Equal(t, 8, result.Score)
	assert.Empty(t, result.Issues)
}

func TestAnalyzeContentStructure_TransitionsNeedFiveParagraphs(t *testing.T) {
	text := leadParagraphFixture + "\n\nDataSync validates rows.\n\nIt ships with a CLI.\n\nIt runs on three clouds.\n\nAbout Acme: visit acme.com."

	result := AnalyzeContentStructure(text)

	assert.Contains(t, result.Issues, "Add transitions between paragraphs")
	assert.Contains(t, result.Issues, "Body paragraphs lack supporting detail (examples, specifics)")
	assert.Equal(t, 5, result.Score)
}

func TestAnalyzeCredibility(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"proof and authority", "Acme grew 40% according to Gartner.", 10},
		{"proof only", "A pilot showed faster loads for 300 customers.", 8},
		{"nothing", "Acme is great.", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeCredibility(tt.text).Score)
		})
	}
}

func TestScoreContentQuality_Breakdown(t *testing.T) {
	result := ScoreContentQuality("Acme is great.")

	assert.Equal(t, 20, result.MaxScore)
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 20)
	for _, key := range []string{"fiveWs", "structure", "credibility"} {
		assert.Contains(t, result.Breakdown, key)
	}
	assert.Contains(t, result.Issues, "Press release needs at least 3 paragraphs (lead, body, closing)")
}
