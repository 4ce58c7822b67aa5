package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round down",
			input:    1.234,
			expected: 1.23,
		},
		{
			name:     "Round up",
			input:    1.235,
			expected: 1.24,
		},
		{
			name:     "Negative value",
			input:    -2.718,
			expected: -2.72,
		},
		{
			name:     "Already two decimals",
			input:    100.50,
			expected: 100.50,
		},
		{
			name:     "Machine error residue",
			input:    0.0000001,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Errorf("IsZero(0.005) = false, expected true")
	}
	if IsZero(0.02) {
		t.Errorf("IsZero(0.02) = true, expected false")
	}
	if !IsZero(-0.009) {
		t.Errorf("IsZero(-0.009) = false, expected true")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.4, 0.5) {
		t.Errorf("WithinTolerance(100.0, 100.4, 0.5) = false, expected true")
	}
	if WithinTolerance(100.0, 101.0, 0.5) {
		t.Errorf("WithinTolerance(100.0, 101.0, 0.5) = true, expected false")
	}
}

func TestApplyPercentage(t *testing.T) {
	result := ApplyPercentage(200.0, 26.0)
	if !WithinTolerance(result, 52.0, 1e-9) {
		t.Errorf("ApplyPercentage(200, 26) = %v, expected 52", result)
	}
}
