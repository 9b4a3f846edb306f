package ingestion

import "fmt"

// FileReadError represents an error reading a source document
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("file read error: %s", e.Message)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// FileTooLargeError is returned when a document exceeds the configured size limit
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s is %d bytes (limit %d)", e.Path, e.Size, e.Limit)
}

// ConversionError represents a failure converting HTML to markdown
type ConversionError struct {
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("conversion error: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
