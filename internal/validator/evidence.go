package validator

import (
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	evidenceBase     = 2
	recommendedQuote = 2
	strongEvidence   = 8
)

// ScoreCustomerEvidence scores quoted customer evidence by its quantitative backing (max 10)
func ScoreCustomerEvidence(text string) types.EvidenceResult {
	result := types.EvidenceResult{DimensionResult: types.NewDimensionResult(types.MaxEvidence)}

	quotes := ExtractQuotes(text)
	result.Quotes = len(quotes)
	if len(quotes) == 0 {
		result.AddIssue("No customer quotes found")
		return result
	}

	total := 0
	for _, q := range quotes {
		m := DetectMetrics(q)
		if len(m.Metrics) > 0 {
			result.QuotesWithMetrics++
		}
		total += ScoreQuote(m.Metrics, m.Types)
	}
	avg := float64(total) / float64(len(quotes))

	coverage := 0
	switch {
	case result.QuotesWithMetrics > 1:
		coverage = 2
	case result.QuotesWithMetrics == 1:
		coverage = 1
	}

	result.Score = min(types.MaxEvidence, evidenceBase+roundHalfUp(avg*6/10)+coverage)

	if result.QuotesWithMetrics == 0 {
		result.AddIssue("Customer quotes lack quantitative metrics")
	} else {
		result.AddStrength(fmt.Sprintf("%d quote(s) include quantitative metrics", result.QuotesWithMetrics))
	}

	switch {
	case len(quotes) > recommendedQuote:
		result.AddIssue(fmt.Sprintf("Found %d quotes; use exactly 2 (one Executive Vision, one Customer Relief)", len(quotes)))
	case len(quotes) == recommendedQuote:
		result.AddStrength("Uses the recommended two-quote structure")
	}

	if result.Score >= strongEvidence {
		result.AddStrength("Customer evidence is strong and quantified")
	}

	result.Clamp()
	return result
}
