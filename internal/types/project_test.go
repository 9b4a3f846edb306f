package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

func TestNewProject(t *testing.T) {
	p := NewProject("Ledger", nil, created)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, PhaseDraft, p.CurrentPhase)
	assert.NotNil(t, p.Fields)
	require.Len(t, p.Phases, PhaseCount)
	for i, rec := range p.Phases {
		assert.Equal(t, i+1, rec.Phase)
		assert.Empty(t, rec.Response)
	}
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, created, p.UpdatedAt)
	assert.NoError(t, p.Validate())
}

func TestProject_PhaseResponse(t *testing.T) {
	p := NewProject("Ledger", nil, created)
	p.Phases[1].Response = "review"

	assert.Equal(t, "review", p.PhaseResponse(PhaseReview))
	assert.Empty(t, p.PhaseResponse(PhaseDraft))
	assert.Empty(t, p.PhaseResponse(0))
	assert.Empty(t, p.PhaseResponse(PhaseComplete))
}

func TestProject_IsComplete(t *testing.T) {
	p := NewProject("Ledger", nil, created)
	assert.False(t, p.IsComplete())

	p.CurrentPhase = PhaseComplete
	assert.True(t, p.IsComplete())
}

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Project)
	}{
		{"empty name", func(p *Project) { p.Name = "" }},
		{"phase too low", func(p *Project) { p.CurrentPhase = 0 }},
		{"phase too high", func(p *Project) { p.CurrentPhase = 5 }},
		{"missing phase records", func(p *Project) { p.Phases = p.Phases[:2] }},
		{"bad phase record", func(p *Project) { p.Phases[0].Phase = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProject("Ledger", nil, created)
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestValidationResult_Dimensions(t *testing.T) {
	r := ValidationResult{
		Structure:    DimensionResult{Score: 12, MaxScore: MaxStructure},
		Content:      DimensionResult{Score: 10, MaxScore: MaxContent},
		Professional: DimensionResult{Score: 9, MaxScore: MaxProfessional},
		Evidence:     EvidenceResult{DimensionResult: DimensionResult{Score: 4, MaxScore: MaxEvidence}},
		FAQQuality:   FAQQualityResult{DimensionResult: DimensionResult{Score: 20, MaxScore: MaxFAQQuality}},
	}

	dims := r.Dimensions()
	require.Len(t, dims, 5)
	keys := make([]string, len(dims))
	total, maxTotal := 0, 0
	for i, d := range dims {
		keys[i] = d.Key
		total += d.Result.Score
		maxTotal += d.Result.MaxScore
	}
	assert.Equal(t, []string{"structure", "content", "professional", "evidence", "faqQuality"}, keys)
	assert.Equal(t, 55, total)
	assert.Equal(t, MaxTotalScore, maxTotal)
}

func TestDimensionResult_Clamp(t *testing.T) {
	d := NewDimensionResult(10)
	d.Score = 14
	d.Clamp()
	assert.Equal(t, 10, d.Score)

	d.Score = -3
	d.Clamp()
	assert.Zero(t, d.Score)

	d.AddIssue("weak")
	d.AddStrength("strong")
	assert.Equal(t, []string{"weak"}, d.Issues)
	assert.Equal(t, []string{"strong"}, d.Strengths)
}
