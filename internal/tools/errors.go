package tools

import "fmt"

// ValidationError marks tool arguments rejected before any session was
// opened. The agent loop feeds it back to the model as a tool error.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
