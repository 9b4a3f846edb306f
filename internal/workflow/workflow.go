// Package workflow drives a project through the draft, review, and synthesis phases.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bordenet/pr-faq-assistant/internal/prompts"
	"github.com/bordenet/pr-faq-assistant/internal/types"
)

// phaseTemplates maps each phase onto its prompt template
var phaseTemplates = map[int]string{
	types.PhaseDraft:     prompts.Phase1,
	types.PhaseReview:    prompts.Phase2,
	types.PhaseSynthesis: prompts.Phase3,
}

// PhaseName returns a display name for a phase
func PhaseName(phase int) string {
	switch phase {
	case types.PhaseDraft:
		return "draft"
	case types.PhaseReview:
		return "review"
	case types.PhaseSynthesis:
		return "synthesis"
	case types.PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Advance stores response on the current phase and moves to the next one
func Advance(p *types.Project, response string, now time.Time) error {
	if p.IsComplete() {
		return ErrWorkflowComplete
	}
	if p.CurrentPhase < types.PhaseDraft {
		return &InvalidPhaseError{Phase: p.CurrentPhase}
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return &InvalidResponseError{Phase: p.CurrentPhase, Message: "response is empty"}
	}

	record := &p.Phases[p.CurrentPhase-1]
	record.Response = response
	completed := now
	record.CompletedAt = &completed

	p.CurrentPhase++
	p.UpdatedAt = now
	return nil
}

// BuildPrompt renders the current phase's template with the project's form
// fields and earlier phase responses.
func BuildPrompt(ctx context.Context, cache *prompts.Cache, p *types.Project) (string, error) {
	if p.IsComplete() {
		return "", ErrWorkflowComplete
	}
	name, ok := phaseTemplates[p.CurrentPhase]
	if !ok {
		return "", &InvalidPhaseError{Phase: p.CurrentPhase}
	}

	tmpl, err := cache.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to load template for phase %d: %w", p.CurrentPhase, err)
	}
	return prompts.Format(tmpl, PromptData(p)), nil
}

// PromptData returns the placeholder values for a project. Every form field is
// present (empty when unset) so templates never show raw placeholders for them.
func PromptData(p *types.Project) map[string]string {
	data := make(map[string]string, len(types.FormFields)+3)
	for _, field := range types.FormFields {
		data[placeholderName(field)] = strings.TrimSpace(p.Fields[field])
	}
	if data["ProductName"] == "" {
		data["ProductName"] = p.Name
	}
	data["ProjectName"] = p.Name
	data["Phase1Output"] = p.PhaseResponse(types.PhaseDraft)
	data["Phase2Output"] = p.PhaseResponse(types.PhaseReview)
	return data
}

// placeholderName turns a field key such as "launchDate" into "LaunchDate"
func placeholderName(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// FinalDocument returns the synthesized PR-FAQ, falling back to the phase 1 draft
func FinalDocument(p *types.Project) string {
	if doc := p.PhaseResponse(types.PhaseSynthesis); doc != "" {
		return doc
	}
	return p.PhaseResponse(types.PhaseDraft)
}

// Reset rewinds the project to phase, clearing that phase's response and all later ones
func Reset(p *types.Project, phase int, now time.Time) error {
	if phase < types.PhaseDraft || phase > types.PhaseSynthesis {
		return &InvalidPhaseError{Phase: phase}
	}
	for i := phase - 1; i < len(p.Phases); i++ {
		p.Phases[i].Prompt = ""
		p.Phases[i].Response = ""
		p.Phases[i].CompletedAt = nil
	}
	p.CurrentPhase = phase
	p.LatestScore = nil
	p.UpdatedAt = now
	return nil
}
