package gaps

import "fmt"

// InvalidArgumentError represents a caller contract violation, such as a non-positive top N.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Message)
}
