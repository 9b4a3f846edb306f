package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	headlineMax    = 10
	hookMax        = 15
	releaseDateMax = 5
	structureRaw   = headlineMax + hookMax + releaseDateMax

	// releaseDateWindow is how far into the text a dateline date may appear
	releaseDateWindow = 200
)

var (
	headlineStrongVerbRe = regexp.MustCompile(`(?i)\b(?:launch(?:es|ed)|announces|introduces|unveils|releases|delivers|enables|transforms|reduces|cuts|eliminates|accelerates|expands|debuts|doubles|simplifies|saves)\b`)
	headlineNumericRe    = regexp.MustCompile(`(?i)\d+(?:\.\d+)?%|\b\d+(?:\.\d+)?x\b|\$\d|\bby \d|\bup to \d|\b\d+\b`)
	headlineWeakRe       = regexp.MustCompile(`(?i)\b(?:new|innovative|cutting-edge|revolutionary|world-class|leading|comprehensive|robust)\b`)

	hookTimelyRe       = regexp.MustCompile(`(?i)\b(?:today|now|announced|this (?:week|month|quarter|year)|immediately|newly)\b`)
	hookDatelineRe     = regexp.MustCompile(`[A-Z][A-Za-z .]+,\s*[A-Z]{2}\s*[—–-]|\([^)]*Wire\)`)
	hookOutcomeRe      = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*%|\b\d+(?:\.\d+)?x\b|\b(?:cuts?|cutting|improves?|improving|reduces?|reducing|increases?|increasing)\b[^.]{0,60}?\bby\b`)
	hookProblemRe      = regexp.MustCompile(`(?i)\b(?:solves?|solving|eliminates?|eliminating|addresses|fixes|removes?|prevents?|struggl\w*|pain(?:ful)?|frustrat\w*|problems?)\b`)
	hookSeparatorRe    = regexp.MustCompile(`[,—–]`)
	hookAnnouncementRe = regexp.MustCompile(`(?i)\b(?:announce[sd]?|launch(?:es|ed)?|introduce[sd]?|unveil(?:s|ed)?|release[sd]?|debut(?:s|ed)?)\b`)
	hookFluffRe        = regexp.MustCompile(`(?i)\b(?:revolutionary|game-changing|groundbreaking|cutting-edge|world-class|best-in-class|industry-leading|state-of-the-art|innovative|seamless(?:ly)?|synergy|paradigm)\b`)
)

const monthNames = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var releaseDatePatterns = []*regexp.Regexp{
	// March 15, 2025 / Mar. 15th 2025
	regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`),
	// 15 March 2025
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+` + monthNames + `\.?,?\s+\d{4}\b`),
	// 03/15/2025, 3/15/25
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	// 2025-03-15
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
	// Tuesday, March 15
	regexp.MustCompile(`(?i)\b(?:mon|tues|wednes|thurs|fri|satur|sun)day,?\s+` + monthNames + `\.?\s+\d{1,2}\b`),
}

// AnalyzeHeadlineQuality scores the headline on length, verb strength,
// numeric specificity, and absence of weak marketing words (max 10).
func AnalyzeHeadlineQuality(title string) types.DimensionResult {
	result := types.NewDimensionResult(headlineMax)
	title = strings.TrimSpace(title)
	if title == "" {
		result.AddIssue("No headline found")
		return result
	}

	words := wordCount(title)
	chars := utf8.RuneCountInString(title)

	switch {
	case words >= 8 && words <= 15 && chars >= 40 && chars <= 100:
		result.Score += 3
		result.AddStrength("Headline length is ideal (8-15 words)")
	case chars < 30 || words < 4:
		result.AddIssue(fmt.Sprintf("Headline is too short (%d words)", words))
	case chars > 120 || words > 18:
		result.AddIssue(fmt.Sprintf("Headline is too long (%d words)", words))
	default:
		result.Score++
		result.AddIssue(fmt.Sprintf("Headline length could be tightened (%d words; aim for 8-15)", words))
	}

	if headlineStrongVerbRe.MatchString(title) {
		result.Score += 2
		result.AddStrength("Headline uses a strong action verb")
	} else {
		result.AddIssue("Headline lacks a strong action verb (e.g., Launches, Cuts, Eliminates)")
	}

	if headlineNumericRe.MatchString(title) {
		result.Score += 3
		result.AddStrength("Headline includes a specific number")
	} else {
		result.AddIssue("Headline lacks numeric specificity (add a %, multiplier, or amount)")
	}

	if weak := uniqueMatches(headlineWeakRe, title); len(weak) > 0 {
		result.AddIssue(fmt.Sprintf("Headline uses weak language: %s", strings.Join(weak, ", ")))
	} else {
		result.Score += 2
		result.AddStrength("Headline avoids generic marketing language")
	}

	result.Clamp()
	return result
}

// AnalyzeNewsworthyHook scores the opening paragraph for timeliness, a
// specific outcome, the customer problem, announcement form, and fluff (max 15).
func AnalyzeNewsworthyHook(text string) types.DimensionResult {
	result := types.NewDimensionResult(hookMax)

	opening, ok := leadParagraph(splitParagraphs(text))
	if !ok {
		result.AddIssue("No substantial opening paragraph found")
		return result
	}

	if hookTimelyRe.MatchString(opening) || hookDatelineRe.MatchString(opening) {
		result.Score += 3
		result.AddStrength("Opening is anchored in time")
	} else {
		result.AddIssue("Opening lacks a timely hook or dateline")
	}

	if hookOutcomeRe.MatchString(opening) {
		result.Score += 4
		result.AddStrength("Opening leads with a specific outcome")
	} else {
		result.AddIssue("Opening paragraph lacks a specific, measurable outcome")
	}

	if hookProblemRe.MatchString(opening) {
		result.Score += 3
		result.AddStrength("Opening names the customer problem")
	} else {
		result.AddIssue("Opening doesn't state the customer problem being solved")
	}

	if sentences := splitSentences(opening); len(sentences) > 0 {
		first := sentences[0]
		if hookSeparatorRe.MatchString(first) && hookAnnouncementRe.MatchString(first) {
			result.Score += 2
			result.AddStrength("First sentence reads as a news announcement")
		}
	}

	if fluff := uniqueMatches(hookFluffRe, opening); len(fluff) > 0 {
		result.Score = max(0, result.Score-1)
		result.AddIssue(fmt.Sprintf("Opening paragraph relies on fluff: %s", strings.Join(fluff, ", ")))
	} else {
		result.Score += 3
		result.AddStrength("Opening is free of marketing fluff")
	}

	result.Clamp()
	return result
}

// AnalyzeReleaseDate awards 5 points when a date appears in the opening 200 characters
func AnalyzeReleaseDate(text string) types.DimensionResult {
	result := types.NewDimensionResult(releaseDateMax)

	window := text
	if utf8.RuneCountInString(window) > releaseDateWindow {
		window = string([]rune(window)[:releaseDateWindow])
	}

	for _, re := range releaseDatePatterns {
		if re.MatchString(window) {
			result.Score = releaseDateMax
			result.AddStrength("Release date present in the dateline")
			return result
		}
	}

	result.AddIssue("No release date found in the opening")
	result.AddIssue("Add a dateline such as 'SEATTLE, WA — March 15, 2025 —'")
	return result
}

// ScoreStructureAndHook combines headline, hook, and release date (max 20)
func ScoreStructureAndHook(title, text string) types.DimensionResult {
	headline := AnalyzeHeadlineQuality(title)
	hook := AnalyzeNewsworthyHook(text)
	date := AnalyzeReleaseDate(text)

	result := types.NewDimensionResult(types.MaxStructure)
	result.Score = rescale(headline.Score+hook.Score+date.Score, structureRaw, types.MaxStructure)
	for _, sub := range []types.DimensionResult{headline, hook, date} {
		result.Issues = append(result.Issues, sub.Issues...)
		result.Strengths = append(result.Strengths, sub.Strengths...)
	}
	result.Breakdown = map[string]types.DimensionResult{
		"headline":    headline,
		"hook":        hook,
		"releaseDate": date,
	}

	result.Clamp()
	return result
}
