package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bordenet/pr-faq-assistant/internal/export"
	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/bordenet/pr-faq-assistant/internal/validator"
	"github.com/bordenet/pr-faq-assistant/internal/workflow"
	"github.com/google/uuid"
)

// projectBodyLimit bounds project create/update bodies
const projectBodyLimit = 1 << 20

// AdvanceResponse is returned by POST /projects/{id}/advance
type AdvanceResponse struct {
	Project    *types.Project          `json:"project"`
	Validation *types.ValidationResult `json:"validation,omitempty"`
}

// ProjectValidationResponse is returned by POST /projects/{id}/validate
type ProjectValidationResponse struct {
	Version    types.DocumentVersion  `json:"version"`
	Validation types.ValidationResult `json:"validation"`
}

// loadProject fetches the project named by the {id} path value
func (s *Server) loadProject(ctx context.Context, r *http.Request) (*types.Project, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid project ID"}
	}
	return s.store.GetProject(ctx, id)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeJSON(w, r, projectBodyLimit, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}

	productName := strings.TrimSpace(req.Fields[types.FieldProductName])
	if productName == "" {
		s.writeError(w, &ErrValidation{Field: "fields.productName", Message: "required"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = productName
	}

	p := types.NewProject(name, req.Fields, s.now())
	if err := p.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}
	if err := s.store.CreateProject(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info().Str("project", p.ID.String()).Msg("project created")
	s.jsonResponse(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req UpdateProjectRequest
	if err := decodeJSON(w, r, projectBodyLimit, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	for key, value := range req.Fields {
		if strings.TrimSpace(value) == "" {
			delete(p.Fields, key)
			continue
		}
		p.Fields[key] = value
	}
	if strings.TrimSpace(p.Fields[types.FieldProductName]) == "" {
		s.writeError(w, &ErrValidation{Field: "fields.productName", Message: "required"})
		return
	}

	p.UpdatedAt = s.now()
	if err := p.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "invalid project ID"})
		return
	}
	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	prompt, err := workflow.BuildPrompt(r.Context(), s.prompts, p)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// remember the prompt that produced the next response
	record := &p.Phases[p.CurrentPhase-1]
	if record.Prompt != prompt {
		record.Prompt = prompt
		p.UpdatedAt = s.now()
		if err := s.store.UpdateProject(r.Context(), p); err != nil {
			s.writeError(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, PromptResponse{
		Phase:     p.CurrentPhase,
		PhaseName: workflow.PhaseName(p.CurrentPhase),
		Prompt:    prompt,
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req AdvanceRequest
	if err := decodeJSON(w, r, 2*s.maxBytes+bodyOverhead, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkDocumentSize(req.Response); err != nil {
		s.writeError(w, err)
		return
	}

	if err := workflow.Advance(p, req.Response, s.now()); err != nil {
		s.writeError(w, err)
		return
	}

	resp := AdvanceResponse{Project: p}
	if p.IsComplete() {
		version, result, err := s.scoreProject(r.Context(), p)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Validation = &result
		s.logger.Info().Str("project", p.ID.String()).Int("score", version.TotalScore).Msg("workflow complete")
	}

	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req ResetRequest
	if err := decodeJSON(w, r, projectBodyLimit, s.validate, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := workflow.Reset(p, req.Phase, s.now()); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleValidateProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	version, result, err := s.scoreProject(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ProjectValidationResponse{Version: version, Validation: result})
}

// scoreProject validates the project's final document, records the score on p,
// and saves a document version. The caller persists p.
func (s *Server) scoreProject(ctx context.Context, p *types.Project) (types.DocumentVersion, types.ValidationResult, error) {
	doc := workflow.FinalDocument(p)
	if strings.TrimSpace(doc) == "" {
		return types.DocumentVersion{}, types.ValidationResult{}, &ErrValidation{Field: "document", Message: "project has no document yet"}
	}

	phase := types.PhaseDraft
	if p.PhaseResponse(types.PhaseSynthesis) != "" {
		phase = types.PhaseSynthesis
	}

	result := validator.ValidatePRFAQ(doc)
	version := types.DocumentVersion{
		ProjectID:  p.ID,
		Phase:      phase,
		Content:    doc,
		TotalScore: result.TotalScore,
		CreatedAt:  s.now(),
	}
	if err := s.store.SaveVersion(ctx, &version); err != nil {
		return types.DocumentVersion{}, types.ValidationResult{}, fmt.Errorf("failed to save version: %w", err)
	}

	score := result.TotalScore
	p.LatestScore = &score
	p.UpdatedAt = version.CreatedAt
	return version, result, nil
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	versions, err := s.store.ListVersions(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"versions": versions})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	versions, err := s.store.ListVersions(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(versions) < 2 {
		s.writeError(w, &ErrValidation{Field: "versions", Message: "at least two saved versions are required"})
		return
	}

	prev, last := versions[len(versions)-2], versions[len(versions)-1]
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"from": prev.ID,
		"to":   last.ID,
		"diff": export.DiffVersions(prev.Content, last.Content),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadProject(r.Context(), r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var result *types.ValidationResult
	if doc := workflow.FinalDocument(p); strings.TrimSpace(doc) != "" {
		scored := validator.ValidatePRFAQ(doc)
		result = &scored
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(p)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Markdown(p, result))); err != nil {
		s.logger.Error().Err(err).Msg("failed to write export")
	}
}
