package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bordenet/pr-faq-assistant/internal/types"
)

const (
	faqPresenceMax = 10
	faqRigorMax    = 15

	// fallbackMinQuestion is the minimum length of a bare "...?" line treated as a question
	fallbackMinQuestion = 10
)

// QA is a single question/answer pair parsed from an FAQ section
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSections holds the parsed external and internal FAQ pairs
type FAQSections struct {
	External []QA `json:"external"`
	Internal []QA `json:"internal"`
}

var (
	externalHeaderRe = regexp.MustCompile(`(?im)^##[ \t]+(?:external[ \t]+)?faqs?\b.*$`)
	internalHeaderRe = regexp.MustCompile(`(?im)^##[ \t]+internal[ \t]+faqs?\b.*$`)
	nextSectionRe    = regexp.MustCompile(`(?m)^##[ \t]+\S`)

	boldQuestionRe    = regexp.MustCompile(`(?i)\*\*Q\d*[ \t]*[:.][ \t]*(?:\*\*)?`)
	headingQuestionRe = regexp.MustCompile(`(?im)^###[ \t]*Q\d*[ \t]*[:.][ \t]*`)
	bareQuestionRe    = regexp.MustCompile(`(?im)^[ \t]*Q\d*[ \t]*[:.][ \t]*`)
	answerMarkerRe    = regexp.MustCompile(`(?im)\*\*A\d*[ \t]*[:.][ \t]*(?:\*\*)?|^[ \t]*A\d*[ \t]*[:.][ \t]*`)
	headingRe         = regexp.MustCompile(`(?m)^#{1,3}[ \t]`)
)

type hardQuestion struct {
	name string
	re   *regexp.Regexp
}

// Hard-question families scanned in each internal Q&A; each is counted once.
var hardQuestions = []hardQuestion{
	{"risk", regexp.MustCompile(`(?i)\b(?:risks?|risky|fail\w*|wrong|worst[- ]case|challenges?|obstacles?|concerns?)\b`)},
	{"reversibility", regexp.MustCompile(`(?i)\b(?:revers\w*|one[- ]way|two[- ]way|undo\w*|roll[- ]?backs?|rolling back|doors?|commitments?)\b`)},
	{"opportunity cost", regexp.MustCompile(`(?i)\b(?:opportunity costs?|instead|alternatives?|trade[- ]?offs?|give up|giving up|priorit\w*|not doing|forgo\w*)\b`)},
}

// ExtractFAQs locates the External and Internal FAQ sections in raw markdown
// and parses their question/answer pairs. Each section ends at the next H2.
func ExtractFAQs(markdown string) FAQSections {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	sections := FAQSections{External: []QA{}, Internal: []QA{}}

	if loc := externalHeaderRe.FindStringIndex(markdown); loc != nil {
		sections.External = parseQAPairs(sectionBody(markdown[loc[1]:]))
	}
	if loc := internalHeaderRe.FindStringIndex(markdown); loc != nil {
		sections.Internal = parseQAPairs(sectionBody(markdown[loc[1]:]))
	}
	return sections
}

func sectionBody(rest string) string {
	if loc := nextSectionRe.FindStringIndex(rest); loc != nil {
		return rest[:loc[0]]
	}
	return rest
}

// parseQAPairs tries bold, heading, then bare Q:/A: styles and keeps the first
// that yields any pair; otherwise it pairs "...?" lines with the following line.
func parseQAPairs(section string) []QA {
	if strings.TrimSpace(section) == "" {
		return []QA{}
	}

	if pairs := parseMarked(section, boldQuestionRe, splitAnswer); len(pairs) > 0 {
		return pairs
	}
	if pairs := parseMarked(section, headingQuestionRe, splitHeadingAnswer); len(pairs) > 0 {
		return pairs
	}
	if pairs := parseMarked(section, bareQuestionRe, splitAnswer); len(pairs) > 0 {
		return pairs
	}
	return parseQuestionLines(section)
}

// parseMarked splits section at each question marker and lets split separate
// the question from its answer within each segment.
func parseMarked(section string, marker *regexp.Regexp, split func(string) (string, string)) []QA {
	locs := marker.FindAllStringIndex(section, -1)
	pairs := []QA{}
	for i, loc := range locs {
		end := len(section)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		q, a := split(section[loc[1]:end])
		if q == "" {
			continue
		}
		pairs = append(pairs, QA{Question: q, Answer: a})
	}
	return pairs
}

// splitAnswer separates a segment at its A: marker, or at the first line break
func splitAnswer(segment string) (string, string) {
	if loc := answerMarkerRe.FindStringIndex(segment); loc != nil {
		return cleanFAQText(segment[:loc[0]]), cleanFAQText(segment[loc[1]:])
	}
	q, a, _ := strings.Cut(segment, "\n")
	return cleanFAQText(q), cleanFAQText(a)
}

// splitHeadingAnswer takes the heading line as the question and the body up to the next heading as the answer
func splitHeadingAnswer(segment string) (string, string) {
	q, body, _ := strings.Cut(segment, "\n")
	if loc := headingRe.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	}
	if loc := answerMarkerRe.FindStringIndex(body); loc != nil && strings.TrimSpace(body[:loc[0]]) == "" {
		body = body[loc[1]:]
	}
	return cleanFAQText(q), cleanFAQText(body)
}

func parseQuestionLines(section string) []QA {
	pairs := []QA{}
	lines := strings.Split(section, "\n")
	for i, line := range lines {
		q := cleanFAQText(strings.TrimLeft(strings.TrimSpace(line), "#*- "))
		if !strings.HasSuffix(q, "?") || utf8.RuneCountInString(q) <= fallbackMinQuestion {
			continue
		}
		answer := ""
		for _, next := range lines[i+1:] {
			if next = cleanFAQText(next); next != "" {
				answer = next
				break
			}
		}
		pairs = append(pairs, QA{Question: q, Answer: answer})
	}
	return pairs
}

func cleanFAQText(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}

// faqPresencePoints maps a question count onto the 10-point presence scale
func faqPresencePoints(count int) int {
	switch {
	case count >= 5:
		return 10
	case count >= 3:
		return 6
	case count >= 1:
		return 3
	default:
		return 0
	}
}

func scoreFAQPresence(label string, count int) types.DimensionResult {
	result := types.NewDimensionResult(faqPresenceMax)
	result.Score = faqPresencePoints(count)

	switch {
	case count >= 5:
		result.AddStrength(fmt.Sprintf("%s FAQ has %d questions", label, count))
	case count >= 1:
		result.AddIssue(fmt.Sprintf("%s FAQ has only %d question(s) (aim for 5+)", label, count))
	default:
		result.AddIssue(fmt.Sprintf("No %s FAQ questions found (add a '## %s FAQ' section)", label, label))
	}
	return result
}

// AnalyzeHardQuestions checks internal Q&As for risk, reversibility, and
// opportunity cost. It returns the sub-score, the families missing, and
// whether the section is softball (fewer than two families).
func AnalyzeHardQuestions(internal []QA) (types.DimensionResult, []string, bool) {
	result := types.NewDimensionResult(faqRigorMax)

	found := make([]bool, len(hardQuestions))
	for _, qa := range internal {
		combined := qa.Question + " " + qa.Answer
		for i, hq := range hardQuestions {
			if !found[i] && hq.re.MatchString(combined) {
				found[i] = true
			}
		}
	}

	missing := []string{}
	count := 0
	for i, hq := range hardQuestions {
		if found[i] {
			count++
		} else {
			missing = append(missing, hq.name)
		}
	}

	softball := false
	switch count {
	case 3:
		result.Score = 15
		result.AddStrength("Internal FAQ tackles risk, reversibility, and opportunity cost")
	case 2:
		result.Score = 10
		result.AddIssue(fmt.Sprintf("Internal FAQ is missing a hard question on %s", strings.Join(missing, ", ")))
	case 1:
		result.Score = 5
		softball = true
		result.AddIssue(fmt.Sprintf("Internal FAQ is mostly softball questions (missing: %s)", strings.Join(missing, ", ")))
	default:
		softball = true
		result.AddIssue("Internal FAQ lacks hard questions about risk, reversibility, or opportunity cost")
	}
	return result, missing, softball
}

// ScoreFAQQuality scores External/Internal FAQ presence and Internal FAQ rigor (max 35).
// It operates on raw markdown because it needs the section headers.
func ScoreFAQQuality(markdown string) types.FAQQualityResult {
	faqs := ExtractFAQs(markdown)

	external := scoreFAQPresence("External", len(faqs.External))
	internal := scoreFAQPresence("Internal", len(faqs.Internal))
	rigor, missing, softball := AnalyzeHardQuestions(faqs.Internal)

	result := types.FAQQualityResult{
		DimensionResult:   types.NewDimensionResult(types.MaxFAQQuality),
		ExternalCount:     len(faqs.External),
		InternalCount:     len(faqs.Internal),
		HardQuestionCount: len(hardQuestions) - len(missing),
		MissingHard:       missing,
		SoftballPenalty:   softball,
	}
	result.Score = external.Score + internal.Score + rigor.Score
	for _, sub := range []types.DimensionResult{external, internal, rigor} {
		result.Issues = append(result.Issues, sub.Issues...)
		result.Strengths = append(result.Strengths, sub.Strengths...)
	}
	result.Breakdown = map[string]types.DimensionResult{
		"externalFAQ":   external,
		"internalFAQ":   internal,
		"hardQuestions": rigor,
	}

	result.Clamp()
	return result
}
