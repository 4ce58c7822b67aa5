package projection

import "fmt"

// InvalidAssumptionError indicates a structurally valid but computationally
// unusable input, such as a zero debt tenor with outstanding debt. It names
// the offending field so callers can report it against the input record.
type InvalidAssumptionError struct {
	Field  string
	Reason string
}

func (e *InvalidAssumptionError) Error() string {
	return fmt.Sprintf("invalid assumption %s: %s", e.Field, e.Reason)
}

// invalidAssumption constructs an InvalidAssumptionError.
func invalidAssumption(field, format string, args ...interface{}) error {
	return &InvalidAssumptionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
