package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bordenet/pr-faq-assistant/internal/slop"
	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	toneMax          = 10
	fluffMax         = 10
	professionalRaw  = toneMax + fluffMax
	toneBaseline     = 5
	longSentence     = 25
	maxSlopDeduction = 5
	maxSlopIssues    = 2
)

var (
	passiveRe        = regexp.MustCompile(`(?i)\b(?:is|are|was|were|be|been|being)\s+\w+(?:ed|en)\b`)
	jargonRe         = regexp.MustCompile(`(?i)\b(?:synergy|synergies|leverag\w*|paradigm|holistic|scalable|bandwidth|ecosystem|disruptive|best-of-breed|value-add|low-hanging fruit|move the needle|circle back|deep dive|empower\w*|utiliz\w*)\b`)
	emotionalFluffRe = regexp.MustCompile(`(?i)\b(?:thrilled|excited|delighted|proud|honored|pleased|ecstatic|overjoyed|passionate|amazing|incredible|awesome)\b`)
	hyperboleRe      = regexp.MustCompile(`(?i)\b(?:revolutionary|game-changing|groundbreaking|unprecedented|world-class|best-in-class|industry-leading|cutting-edge|state-of-the-art|next-generation|unparalleled|amazing|incredible|ultimate|seamless(?:ly)?)\b`)
	vagueRe          = regexp.MustCompile(`(?i)\b(?:various|numerous|significant(?:ly)?|substantial(?:ly)?|a lot of|many|several|countless|a number of|dramatically|massively)\b`)
)

// emotionalQuoteRatio returns the fraction of quotes containing emotional fluff
func emotionalQuoteRatio(quotes []string) float64 {
	if len(quotes) == 0 {
		return 0
	}
	fluffy := 0
	for _, q := range quotes {
		if emotionalFluffRe.MatchString(q) {
			fluffy++
		}
	}
	return float64(fluffy) / float64(len(quotes))
}

// AnalyzeToneAndReadability starts neutral at 5 and adjusts for sentence
// length, passive voice, jargon, and emotional quotes (max 10).
func AnalyzeToneAndReadability(text string) types.DimensionResult {
	result := types.NewDimensionResult(toneMax)
	result.Score = toneBaseline

	sentences := splitSentences(text)
	if len(sentences) > 0 {
		totalWords, long := 0, 0
		for _, s := range sentences {
			n := wordCount(s)
			totalWords += n
			if n > longSentence {
				long++
			}
		}
		avg := float64(totalWords) / float64(len(sentences))

		switch {
		case avg >= 15 && avg <= 20:
			result.Score += 2
			result.AddStrength(fmt.Sprintf("Readable sentence length (%.0f words on average)", avg))
		case avg > longSentence:
			result.AddIssue(fmt.Sprintf("Sentences are too long (%.0f words on average)", avg))
		}

		if float64(long) > float64(len(sentences))/3 {
			result.Score--
			result.AddIssue(fmt.Sprintf("Too many long sentences (%d over %d words)", long, longSentence))
		}

		if passive := len(passiveRe.FindAllString(text, -1)); float64(passive) > float64(len(sentences))/4 {
			result.Score--
			result.AddIssue(fmt.Sprintf("Heavy use of passive voice (%d instances)", passive))
		} else {
			result.Score++
			result.AddStrength("Uses active voice")
		}
	} else {
		result.AddIssue("No complete sentences found")
	}

	switch jargon := len(jargonRe.FindAllString(text, -1)); {
	case jargon > 3:
		result.Score--
		result.AddIssue(fmt.Sprintf("Too much corporate jargon (%d instances)", jargon))
	case jargon == 0:
		result.Score++
		result.AddStrength("Free of corporate jargon")
	}

	if quotes := ExtractQuotes(text); len(quotes) > 0 {
		if emotionalQuoteRatio(quotes) < 0.5 {
			result.Score++
			result.AddStrength("Quotes are substantive rather than emotional")
		} else {
			result.AddIssue("Quotes lean on emotional language (thrilled, excited, proud)")
		}
	}

	result.Clamp()
	return result
}

// AnalyzeMarketingFluff starts at 10 and deducts for hyperbole, emotional
// quotes, vague terms, missing proof, and AI slop (max 10).
func AnalyzeMarketingFluff(text string) types.DimensionResult {
	result := types.NewDimensionResult(fluffMax)
	result.Score = fluffMax

	switch hyperbole := len(hyperboleRe.FindAllString(text, -1)); {
	case hyperbole > 3:
		result.Score -= 3
		result.AddIssue(fmt.Sprintf("Excessive hyperbole (%d instances): %s", hyperbole, strings.Join(uniqueMatches(hyperboleRe, text), ", ")))
	case hyperbole > 1:
		result.Score--
		result.AddIssue(fmt.Sprintf("Some hyperbole (%d instances): %s", hyperbole, strings.Join(uniqueMatches(hyperboleRe, text), ", ")))
	case hyperbole == 0:
		result.AddStrength("No hyperbolic language")
	}

	if quotes := ExtractQuotes(text); len(quotes) > 0 {
		switch ratio := emotionalQuoteRatio(quotes); {
		case ratio > 0.7:
			result.Score -= 3
			result.AddIssue("Most quotes are emotional fluff rather than customer outcomes")
		case ratio > 0.3:
			result.Score--
			result.AddIssue("Several quotes rely on emotional fluff")
		default:
			result.AddStrength("Quotes avoid emotional fluff")
		}
	}

	switch vague := len(vagueRe.FindAllString(text, -1)); {
	case vague > 2:
		result.Score -= 2
		result.AddIssue(fmt.Sprintf("Vague quantifiers (%d instances); replace with specific numbers", vague))
	case vague == 0:
		result.AddStrength("Uses precise language")
	}

	if !proofRe.MatchString(text) {
		result.Score--
		result.AddIssue("Marketing claims are unsubstantiated (no data or sources)")
	}

	result.Score = max(0, result.Score)

	penalty := slop.GetSlopPenalty(text)
	if deduction := min(maxSlopDeduction, penalty.Penalty*6/10); deduction > 0 {
		result.Score = max(0, result.Score-deduction)
	}
	for i, issue := range penalty.Issues {
		if i == maxSlopIssues {
			break
		}
		result.AddIssue(issue)
	}

	result.Clamp()
	return result
}

// ScoreProfessionalQuality combines tone/readability with marketing fluff (max 15)
func ScoreProfessionalQuality(text string) types.DimensionResult {
	tone := AnalyzeToneAndReadability(text)
	fluff := AnalyzeMarketingFluff(text)

	result := types.NewDimensionResult(types.MaxProfessional)
	result.Score = rescale(tone.Score+fluff.Score, professionalRaw, types.MaxProfessional)
	for _, sub := range []types.DimensionResult{tone, fluff} {
		result.Issues = append(result.Issues, sub.Issues...)
		result.Strengths = append(result.Strengths, sub.Strengths...)
	}
	result.Breakdown = map[string]types.DimensionResult{
		"tone":  tone,
		"fluff": fluff,
	}

	result.Clamp()
	return result
}
