package validation

import (
	"strings"
	"testing"
)

func TestCheckFraction(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		value      float64
		expectWarn bool
	}{
		{name: "In range", field: "taxRate", value: 0.26, expectWarn: false},
		{name: "Lower bound", field: "debtFraction", value: 0.0, expectWarn: false},
		{name: "Upper bound", field: "utilization", value: 1.0, expectWarn: false},
		{name: "Above one", field: "debtFraction", value: 1.2, expectWarn: true},
		{name: "Negative", field: "taxRate", value: -0.1, expectWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := CheckFraction(tt.field, tt.value)
			if tt.expectWarn && warning == "" {
				t.Errorf("CheckFraction(%s, %v) expected a warning", tt.field, tt.value)
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("CheckFraction(%s, %v) = %q, expected no warning", tt.field, tt.value, warning)
			}
			if tt.expectWarn && !strings.Contains(warning, tt.field) {
				t.Errorf("warning %q does not name field %s", warning, tt.field)
			}
		})
	}
}

func TestCheckNonNegative(t *testing.T) {
	if warning := CheckNonNegative("ppaPrice", 30.0); warning != "" {
		t.Errorf("CheckNonNegative(30) = %q, expected no warning", warning)
	}
	if warning := CheckNonNegative("ppaPrice", -5.0); warning == "" {
		t.Errorf("CheckNonNegative(-5) expected a warning")
	}
}

func TestCheckPositiveYears(t *testing.T) {
	if warning := CheckPositiveYears("horizonYears", 25); warning != "" {
		t.Errorf("CheckPositiveYears(25) = %q, expected no warning", warning)
	}
	if warning := CheckPositiveYears("horizonYears", 0); warning == "" {
		t.Errorf("CheckPositiveYears(0) expected a warning")
	}
}

func TestCollect(t *testing.T) {
	warnings := Collect(nil, "", "first", "", "second")
	if len(warnings) != 2 {
		t.Fatalf("Collect() kept %d warnings, expected 2", len(warnings))
	}
	if warnings[0] != "first" || warnings[1] != "second" {
		t.Errorf("Collect() = %v, order not preserved", warnings)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	if err := ValidateOutputFormat("pretty"); err != nil {
		t.Errorf("ValidateOutputFormat(pretty) error = %v", err)
	}
	if err := ValidateOutputFormat("csv"); err != nil {
		t.Errorf("ValidateOutputFormat(csv) error = %v", err)
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Errorf("ValidateOutputFormat(xml) expected error")
	}
}
