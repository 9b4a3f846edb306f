package workflow

import (
	"errors"
	"fmt"
)

// ErrWorkflowComplete is returned when a completed project is advanced or prompted
var ErrWorkflowComplete = errors.New("workflow is already complete")

// InvalidResponseError is returned when a phase response cannot be accepted
type InvalidResponseError struct {
	Phase   int
	Message string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response for phase %d: %s", e.Phase, e.Message)
}

// InvalidPhaseError is returned when a phase number is out of range
type InvalidPhaseError struct {
	Phase int
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("invalid phase %d: must be between 1 and 3", e.Phase)
}
