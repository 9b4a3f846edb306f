package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	fiveWsMax      = 15
	layoutMax      = 10
	credibilityMax = 10
	contentRaw     = fiveWsMax + layoutMax + credibilityMax

	credibilityBaseline = 5
)

type wCheck struct {
	name   string
	points int
	re     *regexp.Regexp
	issue  string
}

var fiveWs = []wCheck{
	{
		name:   "who",
		points: 3,
		re:     regexp.MustCompile(`\b[A-Z][A-Za-z0-9&]*(?:\s[A-Z][A-Za-z0-9&]*)*,?\s(?:Inc|Corp|Corporation|LLC|Ltd|Company|Co|Technologies|Labs)\b|\b[A-Z][a-z]+[A-Z][A-Za-z]+\b|(?i:\b(?:the company|our team|the team)\b)`),
		issue:  "Unclear WHO is making the announcement (name the company)",
	},
	{
		name:   "what",
		points: 3,
		re:     regexp.MustCompile(`(?i)\b(?:launch\w*|announc\w*|introduc\w*|unveil\w*|releas\w*|debut\w*|deliver\w*|offer\w*|provid\w*)\b`),
		issue:  "Unclear WHAT is being announced (use a launch/announce verb)",
	},
	{
		name:   "when",
		points: 3,
		re:     regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+\d{1,2}\b|\b(?:today|tomorrow|this (?:week|month|quarter|year)|next (?:week|month|quarter|year)|starting|beginning|available (?:now|immediately))\b|\bQ[1-4]\b|\b20\d{2}\b`),
		issue:  "Unclear WHEN this is available (add a date or timeframe)",
	},
	{
		name:   "where",
		points: 2,
		re:     regexp.MustCompile(`(?m)^[A-Z][A-Za-z .]+,\s*[A-Z]{2}\b|(?i:\b(?:worldwide|globally|global|nationwide|internationally|countries|regions?|markets?|available in|in the (?:US|U\.S\.|United States|EU|UK))\b)`),
		issue:  "Unclear WHERE this is available (add a location or market)",
	},
	{
		name:   "why",
		points: 4,
		re:     regexp.MustCompile(`(?i)\b(?:because|so that|in order to|which means|enabl\w*|helps?|allow\w*|to solve|so customers)\b`),
		issue:  "Unclear WHY this matters to customers (state the benefit)",
	},
}

var (
	supportingDetailRe = regexp.MustCompile(`(?i)\b(?:additionally|furthermore|moreover|also|in addition|for example|for instance|specifically|including)\b`)
	boilerplateRe      = regexp.MustCompile(`(?i)\b(?:about|founded|headquartered|mission|for more information|visit|learn more)\b|www\.|\.com\b`)
	transitionRe       = regexp.MustCompile(`(?i)\b(?:however|meanwhile|as a result|consequently|therefore|in addition|additionally|furthermore|finally|next)\b`)

	// proofRe is shared by credibility and marketing-fluff; each evaluates it independently.
	proofRe     = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*%|\b\d[\d,]*\s+(?:customers|users|companies|businesses|organizations|teams)\b|\b(?:study|survey|research|data|report|pilot|beta)\s+(?:shows?|showed|found|finds|indicates?|demonstrated)\b|\baccording to\b|\b(?:measured|verified|benchmark\w*)\b`)
	authorityRe = regexp.MustCompile(`(?i)\b(?:Gartner|Forrester|IDC|McKinsey|analysts?|research firm|industry report)\b`)
)

// Analyze5Ws checks who/what/when/where/why over the first three paragraphs (max 15)
func Analyze5Ws(text string) types.DimensionResult {
	result := types.NewDimensionResult(fiveWsMax)

	paragraphs := splitParagraphs(text)
	if len(paragraphs) > 3 {
		paragraphs = paragraphs[:3]
	}
	opening := strings.Join(paragraphs, "\n\n")

	found := 0
	for _, w := range fiveWs {
		if w.re.MatchString(opening) {
			result.Score += w.points
			found++
		} else {
			result.AddIssue(w.issue)
		}
	}
	if found == len(fiveWs) {
		result.AddStrength("Covers all 5 Ws (who, what, when, where, why)")
	}

	result.Clamp()
	return result
}

// AnalyzeContentStructure checks lead length, body support, boilerplate, and transitions (max 10)
func AnalyzeContentStructure(text string) types.DimensionResult {
	result := types.NewDimensionResult(layoutMax)

	paragraphs := splitParagraphs(text)
	if len(paragraphs) < 3 {
		result.Score = 2
		result.AddIssue("Press release needs at least 3 paragraphs (lead, body, closing)")
		return result
	}

	lead, ok := leadParagraph(paragraphs)
	if !ok {
		lead = paragraphs[0]
	}
	if words := wordCount(lead); words >= 25 && words <= 70 {
		result.Score += 3
		result.AddStrength("Lead paragraph is a focused summary")
	} else {
		result.AddIssue(fmt.Sprintf("Lead paragraph has %d words (aim for 25-70)", words))
	}

	middle := strings.Join(paragraphs[1:len(paragraphs)-1], "\n\n")
	if supportingDetailRe.MatchString(middle) {
		result.Score += 3
		result.AddStrength("Body paragraphs provide supporting detail")
	} else {
		result.AddIssue("Body paragraphs lack supporting detail (examples, specifics)")
	}

	if boilerplateRe.MatchString(paragraphs[len(paragraphs)-1]) {
		result.Score += 2
		result.AddStrength("Closes with boilerplate or a call to action")
	} else {
		result.AddIssue("Missing closing paragraph (about the company, where to learn more)")
	}

	if len(paragraphs) > 4 {
		if transitionRe.MatchString(text) {
			result.Score += 2
			result.AddStrength("Paragraphs are connected with transitions")
		} else {
			result.AddIssue("Add transitions between paragraphs")
		}
	}

	result.Clamp()
	return result
}

// AnalyzeCredibility starts neutral at 5 and adjusts for proof and third-party authority (max 10)
func AnalyzeCredibility(text string) types.DimensionResult {
	result := types.NewDimensionResult(credibilityMax)
	result.Score = credibilityBaseline

	if proofRe.MatchString(text) {
		result.Score += 3
		result.AddStrength("Claims are backed by evidence")
	} else {
		result.Score--
		result.AddIssue("Claims lack supporting evidence (data, studies, or sources)")
	}

	if authorityRe.MatchString(text) {
		result.Score += 2
		result.AddStrength("Cites a third-party authority")
	}

	result.Clamp()
	return result
}

// ScoreContentQuality combines 5 Ws, structure, and credibility (max 20)
func ScoreContentQuality(text string) types.DimensionResult {
	ws := Analyze5Ws(text)
	layout := AnalyzeContentStructure(text)
	cred := AnalyzeCredibility(text)

	result := types.NewDimensionResult(types.MaxContent)
	result.Score = rescale(ws.Score+layout.Score+cred.Score, contentRaw, types.MaxContent)
	for _, sub := range []types.DimensionResult{ws, layout, cred} {
		result.Issues = append(result.Issues, sub.Issues...)
		result.Strengths = append(result.Strengths, sub.Strengths...)
	}
	result.Breakdown = map[string]types.DimensionResult{
		"fiveWs":      ws,
		"structure":   layout,
		"credibility": cred,
	}

	result.Clamp()
	return result
}
