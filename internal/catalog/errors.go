package catalog

import "fmt"

// LoadError represents a catalog document that could not be read, decoded or validated.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// PatternError represents an extraction pattern that does not compile.
type PatternError struct {
	Index   int
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("catalog pattern %d (%q) is invalid: %v", e.Index, e.Pattern, e.Cause)
}

func (e *PatternError) Unwrap() error {
	return e.Cause
}
