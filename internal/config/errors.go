package config

import "strings"

// ValidationError lists every invalid configuration value.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config error: " + strings.Join(e.Problems, "; ")
}
