// Package validator scores PR-FAQ documents against the working-backwards rubric.
// Every function in this package is pure: no I/O, no logging, no shared state.
package validator

import "regexp"

// MetricKind classifies a detected quantitative claim
type MetricKind string

const (
	MetricPercentage MetricKind = "percentage"
	MetricRatio      MetricKind = "ratio"
	MetricAbsolute   MetricKind = "absolute"

	// MetricScore is reserved for rating-style metrics ("4.8 stars"); DetectMetrics never emits it.
	MetricScore MetricKind = "score"
)

const number = `\d[\d,]*(?:\.\d+)?`

type metricPattern struct {
	kind MetricKind
	re   *regexp.Regexp
}

// Patterns are scanned in this order; matches are never deduplicated across patterns.
var metricPatterns = []metricPattern{
	{MetricPercentage, regexp.MustCompile(number + `\s*%`)},
	{MetricPercentage, regexp.MustCompile(`(?i)` + number + `\s+percent\b`)},
	{MetricPercentage, regexp.MustCompile(`(?i)` + number + `\s+percentage\s+points?\b`)},

	{MetricRatio, regexp.MustCompile(`(?i)` + number + `x\b`)},
	{MetricRatio, regexp.MustCompile(`\b\d+:\d+\b`)},
	{MetricRatio, regexp.MustCompile(`(?i)` + number + `\s+times\b`)},

	{MetricAbsolute, regexp.MustCompile(`(?i)\$` + number + `(?:\s*(?:million|billion|thousand|k|m|b)\b)?`)},
	{MetricAbsolute, regexp.MustCompile(`(?i)` + number + `\s*(?:milliseconds?|seconds?|minutes?|hours?|days?)\b`)},
	{MetricAbsolute, regexp.MustCompile(`(?i)` + number + `\s+(?:customers?|users?|transactions?)\b`)},
}

// Metrics holds detected metric strings with their kinds in a parallel slice
type Metrics struct {
	Metrics []string     `json:"metrics"`
	Types   []MetricKind `json:"types"`
}

// DetectMetrics finds percentages, ratios, and absolute quantities in text.
// Repeated literals are reported once per occurrence.
func DetectMetrics(text string) Metrics {
	result := Metrics{Metrics: []string{}, Types: []MetricKind{}}
	if text == "" {
		return result
	}

	for _, p := range metricPatterns {
		for _, m := range p.re.FindAllString(text, -1) {
			result.Metrics = append(result.Metrics, m)
			result.Types = append(result.Types, p.kind)
		}
	}
	return result
}

var kindBonus = map[MetricKind]int{
	MetricPercentage: 3,
	MetricRatio:      2,
	MetricAbsolute:   2,
	MetricScore:      1,
}

const maxQuoteScore = 10

// ScoreQuote scores the quantitative backing of a single quote on a 0-10 scale.
// A quote with no metrics scores 0.
func ScoreQuote(metrics []string, kinds []MetricKind) int {
	if len(metrics) == 0 {
		return 0
	}

	score := 2

	seen := make(map[MetricKind]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		score += kindBonus[k]
	}

	if len(metrics) >= 2 {
		score += 2
	}
	if len(metrics) >= 3 {
		score++
	}

	return min(score, maxQuoteScore)
}
