package prompts

import "fmt"

// NotFoundError is returned when a template does not exist
type NotFoundError struct {
	Name  string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prompt template %q not found: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("prompt template %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}
