// Package slop detects generic AI-writing patterns and converts them into a score penalty.
package slop

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Category groups related slop rules
type Category string

const (
	CategoryFiller     Category = "filler"
	CategoryVocabulary Category = "vocabulary"
	CategoryHedging    Category = "hedging"
	CategoryStructural Category = "structural"
)

// emDashLimit is the number of em-dashes tolerated before the structural rule fires
const emDashLimit = 5

// Rule is a single slop pattern with its per-occurrence weight
type Rule struct {
	Name     string
	Category Category
	Weight   int
	Pattern  *regexp.Regexp
}

// Match is one occurrence of a rule, with byte offsets into the analyzed text
type Match struct {
	Rule  string `json:"rule"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Result is the outcome of a slop scan
type Result struct {
	Penalty int      `json:"penalty"`
	Issues  []string `json:"issues"`
	Matches []Match  `json:"matches"`
}

func phrase(name string, category Category, weight int, pattern string) Rule {
	return Rule{
		Name:     name,
		Category: category,
		Weight:   weight,
		Pattern:  regexp.MustCompile(`(?i)\b` + pattern + `\b`),
	}
}

// Rules is the ordered rule table; issues are reported in this order.
var Rules = []Rule{
	phrase("in today's fast-paced world", CategoryFiller, 3, `in today['’]s (?:fast-paced|digital|modern|ever-changing) (?:world|age|landscape|environment)`),
	phrase("it's important to note", CategoryFiller, 3, `it(?:['’]s| is) (?:important|worth) (?:to note|noting)`),
	phrase("at the end of the day", CategoryFiller, 3, `at the end of the day`),
	phrase("needless to say", CategoryFiller, 3, `needless to say`),
	phrase("in an ever-evolving", CategoryFiller, 3, `in an ever-(?:evolving|changing)`),

	phrase("delve", CategoryVocabulary, 2, `delv(?:e|es|ed|ing)`),
	phrase("tapestry", CategoryVocabulary, 2, `tapestry`),
	phrase("testament to", CategoryVocabulary, 2, `(?:a )?testament to`),
	phrase("unlock the power", CategoryVocabulary, 2, `unlock(?:s|ing)? the (?:power|potential|full potential)`),
	phrase("harness the power", CategoryVocabulary, 2, `harness(?:es|ing)? the power`),
	phrase("game-changer", CategoryVocabulary, 2, `game[- ]changer`),
	phrase("navigate the complexities", CategoryVocabulary, 2, `navigat(?:e|es|ing) the complexit(?:y|ies)`),
	phrase("elevate", CategoryVocabulary, 2, `elevat(?:e|es|ing)`),
	phrase("embark", CategoryVocabulary, 2, `embark(?:s|ed|ing)?`),

	phrase("may potentially", CategoryHedging, 2, `(?:may|might) potentially`),
	phrase("could possibly", CategoryHedging, 2, `could possibly`),
}

// GetSlopPenalty scans text against Rules and returns the weighted penalty,
// one issue per triggered rule, and every match sorted by position.
func GetSlopPenalty(text string) Result {
	result := Result{Issues: []string{}, Matches: []Match{}}
	if strings.TrimSpace(text) == "" {
		return result
	}

	for _, rule := range Rules {
		locs := rule.Pattern.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		result.Penalty += rule.Weight * len(locs)
		result.Issues = append(result.Issues, issueFor(rule, len(locs)))
		for _, loc := range locs {
			result.Matches = append(result.Matches, Match{
				Rule:  rule.Name,
				Text:  text[loc[0]:loc[1]],
				Start: loc[0],
				End:   loc[1],
			})
		}
	}

	if dashes := strings.Count(text, "—"); dashes > emDashLimit {
		result.Penalty += 2
		result.Issues = append(result.Issues, fmt.Sprintf("Em-dash overuse (%d); vary sentence structure", dashes))
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Start < result.Matches[j].Start
	})
	return result
}

func issueFor(rule Rule, count int) string {
	switch rule.Category {
	case CategoryFiller:
		return fmt.Sprintf("AI-style filler phrase: %q", rule.Name)
	case CategoryHedging:
		return fmt.Sprintf("Stacked hedging: %q", rule.Name)
	default:
		if count > 1 {
			return fmt.Sprintf("Generic AI vocabulary: %q (%d times)", rule.Name, count)
		}
		return fmt.Sprintf("Generic AI vocabulary: %q", rule.Name)
	}
}
