package validator

import (
	"context"
	"strings"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"golang.org/x/sync/errgroup"
)

// PenaltyWarning is prepended to the issue list when the FAQ penalty caps the total
const PenaltyWarning = "Score capped at 50: Internal FAQ is missing or avoids hard questions (risk, reversibility, opportunity cost)"

const noContent = "No content to analyze"

// ValidatePRFAQ scores a PR-FAQ document across all five dimensions.
// FAQ Quality receives the raw markdown; every other scorer receives stripped text.
func ValidatePRFAQ(markdown string) types.ValidationResult {
	if strings.TrimSpace(markdown) == "" {
		return emptyResult()
	}

	title := ExtractTitle(markdown)
	text := StripMarkdown(markdown)

	result := types.ValidationResult{
		MaxScore:     types.MaxTotalScore,
		Title:        title,
		Structure:    ScoreStructureAndHook(title, text),
		Content:      ScoreContentQuality(text),
		Professional: ScoreProfessionalQuality(text),
		Evidence:     ScoreCustomerEvidence(text),
		FAQQuality:   ScoreFAQQuality(markdown),
	}

	var issues, strengths []string
	for _, d := range result.Dimensions() {
		result.TotalScore += d.Result.Score
		issues = append(issues, d.Result.Issues...)
		strengths = append(strengths, d.Result.Strengths...)
	}

	faq := result.FAQQuality
	if (faq.SoftballPenalty || faq.InternalCount == 0) && result.TotalScore > types.PenaltyCap {
		result.TotalScore = types.PenaltyCap
		result.PenaltyApplied = true
		issues = append([]string{PenaltyWarning}, issues...)
	}
	result.TotalScore = clamp(result.TotalScore, 0, types.MaxTotalScore)

	result.Issues = dedupe(issues)
	result.Strengths = dedupe(strengths)
	return result
}

func emptyResult() types.ValidationResult {
	empty := func(maxScore int) types.DimensionResult {
		d := types.NewDimensionResult(maxScore)
		d.AddIssue(noContent)
		return d
	}
	return types.ValidationResult{
		MaxScore:     types.MaxTotalScore,
		Structure:    empty(types.MaxStructure),
		Content:      empty(types.MaxContent),
		Professional: empty(types.MaxProfessional),
		Evidence:     types.EvidenceResult{DimensionResult: empty(types.MaxEvidence)},
		FAQQuality: types.FAQQualityResult{
			DimensionResult: empty(types.MaxFAQQuality),
			MissingHard:     []string{},
		},
		Issues:    []string{noContent},
		Strengths: []string{},
	}
}

// dedupe keeps the first occurrence of each string
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ValidateBatch validates documents concurrently, preserving input order.
// workers <= 0 runs them one at a time.
func ValidateBatch(ctx context.Context, docs []string, workers int) ([]types.ValidationResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]types.ValidationResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ValidatePRFAQ(doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
