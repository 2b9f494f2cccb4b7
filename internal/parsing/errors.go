package parsing

import "fmt"

// ParseError represents a document that could not be decoded, even loosely.
type ParseError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	source := e.Source
	if source == "" {
		source = "(inline)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", source, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in %s: %s", source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ReadError represents a file that could not be read before parsing.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
