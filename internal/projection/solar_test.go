package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

func TestBuildSolarRowCount(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	builder := NewBuilder(logger)

	in := inputs.DefaultSolar()
	schedule, _, err := builder.BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}
	if schedule.Years() != in.HorizonYears {
		t.Errorf("schedule has %d rows, expected %d", schedule.Years(), in.HorizonYears)
	}
	for i, row := range schedule {
		if row.Year != i+1 {
			t.Errorf("row %d has year %d, expected %d", i, row.Year, i+1)
		}
	}
}

func TestBuildSolarDegradationRecurrence(t *testing.T) {
	in := inputs.DefaultSolar()
	schedule, _, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	for y := 1; y < len(schedule); y++ {
		expected := schedule[y-1].Output * (1 - in.Degradation)
		if !mathutil.WithinTolerance(schedule[y].Output, expected, 1e-6) {
			t.Errorf("year %d energy = %v, expected %v", y+1, schedule[y].Output, expected)
		}
	}

	// Default inputs: CF 0.25, degradation 0.5%/yr, 25-year horizon.
	firstYear := schedule[0].Output
	expectedFirst := 100 * 1000 * 0.25 * 8760 / 1000.0
	if !mathutil.WithinTolerance(firstYear, expectedFirst, 1e-6) {
		t.Errorf("year 1 energy = %v MWh, expected %v", firstYear, expectedFirst)
	}
	lastYear := schedule[len(schedule)-1].Output
	expectedLast := firstYear * math.Pow(0.995, 24)
	if !mathutil.WithinTolerance(lastYear, expectedLast, 1e-6) {
		t.Errorf("year 25 energy = %v MWh, expected %v", lastYear, expectedLast)
	}
}

func TestBuildSolarRevenueEscalation(t *testing.T) {
	in := inputs.DefaultSolar()
	in.MerchantShare = 0.0
	in.Degradation = 0.0

	schedule, _, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	// With no degradation and no merchant sales, revenue compounds at
	// exactly the PPA escalator.
	for y := 1; y < len(schedule); y++ {
		expected := schedule[y-1].Revenue * (1 + in.PPAEscalator)
		if !mathutil.WithinTolerance(schedule[y].Revenue, expected, 0.01) {
			t.Errorf("year %d revenue = %v, expected %v", y+1, schedule[y].Revenue, expected)
		}
	}
}

func TestBuildSolarFinancingSplit(t *testing.T) {
	in := inputs.DefaultSolar()
	_, fin, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	dcKW := in.DCCapacityMW * 1000
	base := dcKW*(in.ModuleCostPerKW+in.InverterCostPerKW+in.BOSCostPerKW) +
		in.InterconnectCost + in.LandCost + in.DevelopmentCost
	expectedTotal := base * (1 + in.ContingencyFraction)
	expectedNet := expectedTotal * (1 - in.ITCFraction)

	if !mathutil.WithinTolerance(fin.TotalCapEx, expectedTotal, 0.01) {
		t.Errorf("total capex = %v, expected %v", fin.TotalCapEx, expectedTotal)
	}
	if !mathutil.WithinTolerance(fin.NetCapEx, expectedNet, 0.01) {
		t.Errorf("net capex = %v, expected %v", fin.NetCapEx, expectedNet)
	}
	if !mathutil.WithinTolerance(fin.DebtPrincipal+fin.EquityContribution, fin.NetCapEx, 0.01) {
		t.Errorf("debt %v + equity %v does not equal net capex %v",
			fin.DebtPrincipal, fin.EquityContribution, fin.NetCapEx)
	}
}

func TestBuildSolarDepreciationFollowsMACRS(t *testing.T) {
	in := inputs.DefaultSolar()
	schedule, fin, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	// 5-year class: 20% in year 1, exhausted after year 6.
	if !mathutil.WithinTolerance(schedule[0].Depreciation, fin.NetCapEx*0.20, 0.01) {
		t.Errorf("year 1 depreciation = %v, expected %v", schedule[0].Depreciation, fin.NetCapEx*0.20)
	}
	totalDepreciation := 0.0
	for _, row := range schedule {
		totalDepreciation += row.Depreciation
	}
	if !mathutil.WithinTolerance(totalDepreciation, fin.NetCapEx, fin.NetCapEx*1e-3) {
		t.Errorf("total depreciation = %v, expected full basis %v", totalDepreciation, fin.NetCapEx)
	}
	for _, row := range schedule[6:] {
		if row.Depreciation != 0 {
			t.Errorf("year %d depreciation = %v, expected 0 after schedule exhausted", row.Year, row.Depreciation)
		}
	}
}

func TestBuildSolarDebtServiceEndsAfterTenor(t *testing.T) {
	in := inputs.DefaultSolar()
	schedule, _, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	for _, row := range schedule {
		if row.Year <= in.DebtTenorYears {
			if row.DebtService <= 0 {
				t.Errorf("year %d debt service = %v, expected positive within tenor", row.Year, row.DebtService)
			}
		} else {
			if row.DebtService != 0 {
				t.Errorf("year %d debt service = %v, expected 0 after tenor", row.Year, row.DebtService)
			}
		}
	}
}

func TestBuildSolarZeroTaxFloor(t *testing.T) {
	in := inputs.DefaultSolar()
	in.PPAPrice = 1.0
	in.MerchantPrice = 1.0

	schedule, _, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	for _, row := range schedule {
		if row.TaxableIncome >= 0 {
			continue
		}
		if row.Tax != 0 {
			t.Errorf("year %d tax = %v with taxable income %v, expected 0", row.Year, row.Tax, row.TaxableIncome)
		}
	}
}

func TestBuildSolarIdempotent(t *testing.T) {
	in := inputs.DefaultSolar()

	first, firstFin, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}
	second, secondFin, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between identical runs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if firstFin.DebtPrincipal != secondFin.DebtPrincipal || firstFin.EquityContribution != secondFin.EquityContribution {
		t.Errorf("financing differs between identical runs")
	}
}

func TestBuildSolarInvalidAssumptions(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*inputs.SolarInputs)
		expectedField string
	}{
		{
			name: "Zero debt tenor with debt",
			mutate: func(in *inputs.SolarInputs) {
				in.DebtTenorYears = 0
			},
			expectedField: "debtTenorYears",
		},
		{
			name: "Negative debt tenor with debt",
			mutate: func(in *inputs.SolarInputs) {
				in.DebtTenorYears = -3
			},
			expectedField: "debtTenorYears",
		},
		{
			name: "Zero horizon",
			mutate: func(in *inputs.SolarInputs) {
				in.HorizonYears = 0
			},
			expectedField: "horizonYears",
		},
		{
			name: "Debt fraction above one",
			mutate: func(in *inputs.SolarInputs) {
				in.DebtFraction = 1.2
			},
			expectedField: "debtFraction",
		},
		{
			name: "Unpublished MACRS class",
			mutate: func(in *inputs.SolarInputs) {
				in.MACRSClass = 9
			},
			expectedField: "macrsClass",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := inputs.DefaultSolar()
			tt.mutate(&in)

			_, _, err := BuildSchedule(in)
			var invalidErr *InvalidAssumptionError
			if !errors.As(err, &invalidErr) {
				t.Fatalf("BuildSchedule() error = %v, expected *InvalidAssumptionError", err)
			}
			if invalidErr.Field != tt.expectedField {
				t.Errorf("error names field %q, expected %q", invalidErr.Field, tt.expectedField)
			}
		})
	}
}

func TestBuildSolarNoDebtAllowsZeroTenor(t *testing.T) {
	in := inputs.DefaultSolar()
	in.DebtFraction = 0
	in.DebtTenorYears = 0

	schedule, fin, err := BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule() error = %v", err)
	}
	if fin.DebtPrincipal != 0 {
		t.Errorf("debt principal = %v, expected 0", fin.DebtPrincipal)
	}
	for _, row := range schedule {
		if row.DebtService != 0 {
			t.Errorf("year %d debt service = %v, expected 0 for all-equity project", row.Year, row.DebtService)
		}
	}
}
