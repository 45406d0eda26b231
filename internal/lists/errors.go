package lists

import "fmt"

// A ValidationError is returned when an input value is rejected before reaching the storage.
type ValidationError struct {
	// Line is the 1-based line of the value in an imported stream, zero otherwise.
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
