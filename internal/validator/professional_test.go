package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeToneAndReadability_NoSentences(t *testing.T) {
	result := AnalyzeToneAndReadability("")

	assert.Equal(t, 6, result.Score)
	assert.Equal(t, []string{"No complete sentences found"}, result.Issues)
}

func TestAnalyzeToneAndReadability_Jargon(t *testing.T) {
	text := "We leverage synergy. Our holistic paradigm is scalable."

	result := AnalyzeToneAndReadability(text)

	assert.Contains(t, result.Issues, "Too much corporate jargon (5 instances)")
}

func TestAnalyzeMarketingFluff_Clean(t *testing.T) {
	result := AnalyzeMarketingFluff("Acme cut costs by 40% for 500 customers.")

	assert.Equal(t, 10, result.Score)
	assert.Empty(t, result.Issues)
	assert.Contains(t, result.Strengths, "No hyperbolic language")
	assert.Contains(t, result.Strengths, "Uses precise language")
}

func TestAnalyzeMarketingFluff_SlopDeduction(t *testing.T) {
	result := AnalyzeMarketingFluff("We delve into a tapestry of synergy.")

	assert.Equal(t, 7, result.Score)
	assert.Contains(t, result.Issues, `Generic AI vocabulary: "delve"`)
	assert.Contains(t, result.Issues, `Generic AI vocabulary: "tapestry"`)
}

func TestAnalyzeMarketingFluff_EmotionalQuotes(t *testing.T) {
	result := AnalyzeMarketingFluff(`"We are thrilled and excited to finally share this with everyone"`)

	assert.Equal(t, 6, result.Score)
	assert.Contains(t, result.Issues, "Most quotes are emotional fluff rather than customer outcomes")
}

func TestAnalyzeMarketingFluff_Hyperbole(t *testing.T) {
	text := "A revolutionary, groundbreaking, unprecedented, world-class launch."

	result := AnalyzeMarketingFluff(text)

	assert.Contains(t, result.Issues, "Excessive hyperbole (4 instances): revolutionary, groundbreaking, unprecedented, world-class")
	assert.Equal(t, 6, result.Score)
}

func TestScoreProfessionalQuality_Breakdown(t *testing.T) {
	result := ScoreProfessionalQuality("Acme cut costs by 40% for 500 customers.")

	assert.Equal(t, 15, result.MaxScore)
	assert.Contains(t, result.Breakdown, "tone")
	assert.Contains(t, result.Breakdown, "fluff")
	assert.Equal(t, rescale(result.Breakdown["tone"].Score+result.Breakdown["fluff"].Score, 20, 15), result.Score)
}
