// Package validation provides assumption-range checking utilities. Checks
// produce warning strings rather than errors: the engine trusts its
// inputs, so out-of-range values are surfaced to the operator instead of
// rejected here.
package validation

import (
	"fmt"

	"github.com/iwvelando/proforma-forecast/pkg/constants"
)

// CheckFraction warns when a value falls outside [0,1]. An empty string
// means the value is in range.
func CheckFraction(name string, value float64) string {
	if value < 0 || value > 1 {
		return fmt.Sprintf("%s = %g is outside [0,1]", name, value)
	}
	return ""
}

// CheckNonNegative warns when a value is negative.
func CheckNonNegative(name string, value float64) string {
	if value < 0 {
		return fmt.Sprintf("%s = %g is negative", name, value)
	}
	return ""
}

// CheckPositiveYears warns when a year count is not positive.
func CheckPositiveYears(name string, value int) string {
	if value <= 0 {
		return fmt.Sprintf("%s = %d must be positive", name, value)
	}
	return ""
}

// Collect appends all non-empty warnings to the given slice.
func Collect(warnings []string, checks ...string) []string {
	for _, warning := range checks {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return warnings
}

// ValidateOutputFormat checks that the requested output format is known.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %q; expected %s or %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
