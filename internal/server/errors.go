package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bordenet/pr-faq-assistant/internal/backup"
	"github.com/bordenet/pr-faq-assistant/internal/db"
	"github.com/bordenet/pr-faq-assistant/internal/ingestion"
	"github.com/bordenet/pr-faq-assistant/internal/schemas"
	"github.com/bordenet/pr-faq-assistant/internal/workflow"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates a document or request body over the configured limit
type ErrPayloadTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("document is %d bytes, limit is %d", e.Size, e.Limit)
	}
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		tooLarge      *ErrPayloadTooLarge
		fileTooLarge  *ingestion.FileTooLargeError
		maxBytes      *http.MaxBytesError
		notFound      *db.NotFoundError
		conflict      *db.ConflictError
		badResponse   *workflow.InvalidResponseError
		badPhase      *workflow.InvalidPhaseError
		schemaErr     *schemas.ValidationError
		countErr      *backup.CountMismatchError
		conversionErr *ingestion.ConversionError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &badResponse), errors.As(err, &badPhase),
		errors.As(err, &schemaErr), errors.As(err, &countErr), errors.As(err, &conversionErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &fileTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict), errors.Is(err, workflow.ErrWorkflowComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
