// Package macrs provides the published MACRS depreciation percentage
// schedules used for US federal tax depreciation of energy assets. The
// tables follow the half-year convention, which is why a class covers one
// more year than its nominal recovery period.
package macrs

// schedules holds the IRS percentage tables keyed by recovery class.
var schedules = map[int][]float64{
	5: {
		0.2000, 0.3200, 0.1920, 0.1152, 0.1152, 0.0576,
	},
	7: {
		0.1429, 0.2449, 0.1749, 0.1249, 0.0893, 0.0892, 0.0893, 0.0446,
	},
	15: {
		0.0500, 0.0950, 0.0855, 0.0770, 0.0693, 0.0623, 0.0590, 0.0590,
		0.0591, 0.0590, 0.0591, 0.0590, 0.0591, 0.0590, 0.0591, 0.0295,
	},
	20: {
		0.03750, 0.07219, 0.06677, 0.06177, 0.05713, 0.05285, 0.04888,
		0.04522, 0.04462, 0.04461, 0.04462, 0.04461, 0.04462, 0.04461,
		0.04462, 0.04461, 0.04462, 0.04461, 0.04462, 0.04461, 0.02231,
	},
}

// Schedule returns the percentage schedule for the given recovery class.
// The second return value is false when the class is not a published table.
func Schedule(class int) ([]float64, bool) {
	table, ok := schedules[class]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(table))
	copy(out, table)
	return out, true
}

// Rate returns the depreciation percentage for the given recovery class and
// operating year (1-based). Years beyond the schedule return 0.
func Rate(class, year int) float64 {
	table, ok := schedules[class]
	if !ok || year < 1 || year > len(table) {
		return 0.0
	}
	return table[year-1]
}

// Valid reports whether the given class has a published schedule.
func Valid(class int) bool {
	_, ok := schedules[class]
	return ok
}
