// Package types provides type definitions for structured data used throughout the PR-FAQ assistant.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Workflow phases. PhaseComplete is reached after the third phase response is saved.
const (
	PhaseDraft     = 1
	PhaseReview    = 2
	PhaseSynthesis = 3
	PhaseComplete  = 4
	PhaseCount     = 3
)

// Form field keys collected before phase 1
const (
	FieldProductName       = "productName"
	FieldCustomer          = "customer"
	FieldProblem           = "problem"
	FieldSolution          = "solution"
	FieldBenefits          = "benefits"
	FieldMetrics           = "metrics"
	FieldLaunchDate        = "launchDate"
	FieldLocation          = "location"
	FieldQuoteExecutive    = "quoteExecutive"
	FieldQuoteCustomer     = "quoteCustomer"
	FieldAdditionalContext = "additionalContext"
)

// FormFields lists the recognised form field keys in display order
var FormFields = []string{
	FieldProductName,
	FieldCustomer,
	FieldProblem,
	FieldSolution,
	FieldBenefits,
	FieldMetrics,
	FieldLaunchDate,
	FieldLocation,
	FieldQuoteExecutive,
	FieldQuoteCustomer,
	FieldAdditionalContext,
}

// PhaseRecord holds the prompt/response exchange for one workflow phase
type PhaseRecord struct {
	Phase       int        `json:"phase" validate:"min=1,max=3"`
	Prompt      string     `json:"prompt,omitempty"`
	Response    string     `json:"response,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Project is a single PR-FAQ being worked through the three phases
type Project struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name" validate:"required,min=1,max=200"`
	Fields       map[string]string `json:"fields"`
	CurrentPhase int               `json:"currentPhase" validate:"min=1,max=4"`
	Phases       []PhaseRecord     `json:"phases" validate:"len=3,dive"`
	LatestScore  *int              `json:"latestScore,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewProject creates a project at phase 1 with empty phase records
func NewProject(name string, fields map[string]string, now time.Time) *Project {
	if fields == nil {
		fields = make(map[string]string)
	}
	phases := make([]PhaseRecord, PhaseCount)
	for i := range phases {
		phases[i].Phase = i + 1
	}
	return &Project{
		ID:           uuid.New(),
		Name:         name,
		Fields:       fields,
		CurrentPhase: PhaseDraft,
		Phases:       phases,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsComplete reports whether all three phases have been answered
func (p *Project) IsComplete() bool {
	return p.CurrentPhase >= PhaseComplete
}

// PhaseResponse returns the saved response for phase n (1-based), or "" if none
func (p *Project) PhaseResponse(n int) string {
	if n < 1 || n > len(p.Phases) {
		return ""
	}
	return p.Phases[n-1].Response
}

// Validate validates the project using the validator
func (p *Project) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// DocumentVersion is a saved, scored snapshot of a project's document
type DocumentVersion struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	Phase      int       `json:"phase"`
	Content    string    `json:"content"`
	TotalScore int       `json:"totalScore"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Backup is the JSON export shape for all projects
type Backup struct {
	Version      int       `json:"version"`
	ExportDate   time.Time `json:"exportDate"`
	ProjectCount int       `json:"projectCount"`
	Projects     []Project `json:"projects"`
}
