// Package types provides type definitions for structured data used throughout the PR-FAQ assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DimensionResult is the score for one rubric dimension (or one of its sub-analyses).
// Score is always within [0, MaxScore].
type DimensionResult struct {
	Score     int                        `json:"score"`
	MaxScore  int                        `json:"maxScore"`
	Issues    []string                   `json:"issues"`
	Strengths []string                   `json:"strengths"`
	Breakdown map[string]DimensionResult `json:"breakdown,omitempty"`
}

// NewDimensionResult returns an empty result with non-nil issue and strength lists
func NewDimensionResult(maxScore int) DimensionResult {
	return DimensionResult{
		MaxScore:  maxScore,
		Issues:    []string{},
		Strengths: []string{},
	}
}

// AddIssue appends an issue message
func (d *DimensionResult) AddIssue(msg string) {
	d.Issues = append(d.Issues, msg)
}

// AddStrength appends a strength message
func (d *DimensionResult) AddStrength(msg string) {
	d.Strengths = append(d.Strengths, msg)
}

// Clamp forces Score into [0, MaxScore]
func (d *DimensionResult) Clamp() {
	if d.Score < 0 {
		d.Score = 0
	}
	if d.Score > d.MaxScore {
		d.Score = d.MaxScore
	}
}

// EvidenceResult is the Customer Evidence dimension with quote counters
type EvidenceResult struct {
	DimensionResult
	Quotes            int `json:"quotes"`
	QuotesWithMetrics int `json:"quotesWithMetrics"`
}

// FAQQualityResult is the FAQ Quality dimension with question counters
type FAQQualityResult struct {
	DimensionResult
	ExternalCount     int      `json:"externalCount"`
	InternalCount     int      `json:"internalCount"`
	HardQuestionCount int      `json:"hardQuestionCount"`
	MissingHard       []string `json:"missingHardQuestions"`
	SoftballPenalty   bool     `json:"softballPenalty"`
}

// ValidationResult is the composite score for one PR-FAQ document.
// TotalScore equals the sum of the five dimension scores unless PenaltyApplied,
// in which case it is capped at PenaltyCap.
type ValidationResult struct {
	TotalScore     int              `json:"totalScore"`
	MaxScore       int              `json:"maxScore"`
	Title          string           `json:"title,omitempty"`
	Structure      DimensionResult  `json:"structure"`
	Content        DimensionResult  `json:"content"`
	Professional   DimensionResult  `json:"professional"`
	Evidence       EvidenceResult   `json:"evidence"`
	FAQQuality     FAQQualityResult `json:"faqQuality"`
	Issues         []string         `json:"issues"`
	Strengths      []string         `json:"strengths"`
	PenaltyApplied bool             `json:"penaltyApplied"`
}

// Dimension maxima
const (
	MaxTotalScore   = 100
	MaxStructure    = 20
	MaxContent      = 20
	MaxProfessional = 15
	MaxEvidence     = 10
	MaxFAQQuality   = 35
	PenaltyCap      = 50
)

// Dimensions returns the five top-level dimension results in reporting order
func (r *ValidationResult) Dimensions() []NamedDimension {
	return []NamedDimension{
		{Name: "Structure & Hook", Key: "structure", Result: r.Structure},
		{Name: "Content Quality", Key: "content", Result: r.Content},
		{Name: "Professional Quality", Key: "professional", Result: r.Professional},
		{Name: "Customer Evidence", Key: "evidence", Result: r.Evidence.DimensionResult},
		{Name: "FAQ Quality", Key: "faqQuality", Result: r.FAQQuality.DimensionResult},
	}
}

// NamedDimension pairs a dimension result with its display name and JSON key
type NamedDimension struct {
	Name   string
	Key    string
	Result DimensionResult
}
