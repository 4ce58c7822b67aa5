// Package output provides utilities for formatting and displaying
// projection results.
package output

import (
	"fmt"

	"github.com/iwvelando/proforma-forecast/internal/metrics"
	"github.com/iwvelando/proforma-forecast/internal/projection"
	"github.com/iwvelando/proforma-forecast/internal/scenario"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyProforma outputs a human-readable schedule, financing overview,
// and summary block for one projection run.
func PrettyProforma(sector string, schedule projection.Schedule, fin projection.FinancingStructure, totals metrics.SummaryTotals, rate float64, rateErr error) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Proforma for sector %s ---\n", sector)
	_, _ = p.Printf("Total CapEx: $%.2f | Net CapEx: $%.2f | Debt: $%.2f | Equity: $%.2f\n",
		fin.TotalCapEx, fin.NetCapEx, fin.DebtPrincipal, fin.EquityContribution)
	fmt.Printf("Year | Output       | Revenue        | EBITDA         | Debt Service   | Tax            | Net Cash Flow\n")
	fmt.Printf("____ | ____________ | ______________ | ______________ | ______________ | ______________ | _____________\n")
	for _, row := range schedule {
		_, _ = p.Printf("%4d | %12.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Year, row.Output, row.Revenue, row.EBITDA, row.DebtService, row.Tax, row.NetCashFlow)
	}

	fmt.Printf("--- Summary ---\n")
	_, _ = p.Printf("Revenue: $%.2f | EBITDA: $%.2f | Net Income: $%.2f | Debt Service: $%.2f\n",
		totals.Revenue, totals.EBITDA, totals.NetIncome, totals.DebtService)
	if rateErr != nil {
		fmt.Printf("Equity IRR: not solvable (%v)\n", rateErr)
	} else {
		fmt.Printf("Equity IRR: %.2f%%\n", rate*100)
	}
}

// CsvProforma outputs the schedule in comma-separated value format.
func CsvProforma(schedule projection.Schedule) {
	fmt.Printf(`"year","output","revenue","operatingCost","ebitda","depreciation","interest","debtService","tax","netIncome","netCashFlow"`)
	fmt.Printf("\n")
	for _, row := range schedule {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			row.Year, row.Output, row.Revenue, row.OperatingCost, row.EBITDA,
			row.Depreciation, row.Interest, row.DebtService, row.Tax, row.NetIncome, row.NetCashFlow)
		fmt.Printf("\n")
	}
}

// PrettyScenarios outputs a human-readable comparison table for a
// scenario set.
func PrettyScenarios(field string, set scenario.Set) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Scenarios over %s ---\n", field)
	fmt.Printf("Multiplier | Revenue        | EBITDA         | Net Income     | Equity IRR\n")
	fmt.Printf("__________ | ______________ | ______________ | ______________ | __________\n")
	for _, result := range set {
		if result.Err != nil {
			_, _ = p.Printf("%10.2f | failed: %v\n", result.Multiplier, result.Err)
			continue
		}
		_, _ = p.Printf("%10.2f | $%.2f | $%.2f | $%.2f | %.2f%%\n",
			result.Multiplier, result.Summary.Revenue, result.Summary.EBITDA,
			result.Summary.NetIncome, result.EquityIRR*100)
	}
}

// CsvScenarios outputs the scenario comparison in comma-separated value
// format.
func CsvScenarios(field string, set scenario.Set) {
	fmt.Printf(`"field","multiplier","revenue","ebitda","netIncome","equityIRR","error"`)
	fmt.Printf("\n")
	for _, result := range set {
		if result.Err != nil {
			fmt.Printf(`"%s","%.4f","","","","","%s"`, field, result.Multiplier, result.Err)
			fmt.Printf("\n")
			continue
		}
		fmt.Printf(`"%s","%.4f","%.2f","%.2f","%.2f","%.6f",""`,
			field, result.Multiplier, result.Summary.Revenue, result.Summary.EBITDA,
			result.Summary.NetIncome, result.EquityIRR)
		fmt.Printf("\n")
	}
}
