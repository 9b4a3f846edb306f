package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/go-playground/validator/v10"
)

// MaxBatchDocuments caps the documents in one batch request
const MaxBatchDocuments = 50

// ValidateRequest is the body of POST /validate
type ValidateRequest struct {
	Markdown string `json:"markdown"`
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=markdown html text"`
}

// BatchValidateRequest is the body of POST /validate/batch
type BatchValidateRequest struct {
	Documents []string `json:"documents" validate:"required,min=1,max=50"`
}

// BatchValidateResponse is returned by POST /validate/batch
type BatchValidateResponse struct {
	Results []types.ValidationResult `json:"results"`
}

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name   string            `json:"name,omitempty" validate:"omitempty,max=200"`
	Fields map[string]string `json:"fields" validate:"required,dive,keys,oneof=productName customer problem solution benefits metrics launchDate location quoteExecutive quoteCustomer additionalContext,endkeys,max=20000"`
}

// UpdateProjectRequest is the body of PUT /projects/{id}. Fields are merged;
// an empty value removes the field.
type UpdateProjectRequest struct {
	Name   *string           `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Fields map[string]string `json:"fields,omitempty" validate:"omitempty,dive,keys,oneof=productName customer problem solution benefits metrics launchDate location quoteExecutive quoteCustomer additionalContext,endkeys,max=20000"`
}

// AdvanceRequest is the body of POST /projects/{id}/advance
type AdvanceRequest struct {
	Response string `json:"response" validate:"required"`
}

// ResetRequest is the body of POST /projects/{id}/reset
type ResetRequest struct {
	Phase int `json:"phase" validate:"required,min=1,max=3"`
}

// PromptResponse is returned by GET /projects/{id}/prompt
type PromptResponse struct {
	Phase     int    `json:"phase"`
	PhaseName string `json:"phaseName"`
	Prompt    string `json:"prompt"`
}

// decodeJSON reads a JSON body of at most limit bytes into dst and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v *validator.Validate, dst any) error {
	body := io.Reader(r.Body)
	if limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return &ErrPayloadTooLarge{Limit: maxBytes.Limit}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := v.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		msg := ve.Tag()
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s=%s", ve.Tag(), ve.Param())
		}
		return &ErrValidation{Field: fieldPath(ve.Namespace()), Message: msg}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// fieldPath drops the struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
