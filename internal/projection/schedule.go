// Package projection transforms one set of project assumptions into a
// year-by-year forecast schedule plus the financing structure backing it.
// Building is pure: identical inputs always yield identical schedules.
package projection

// ForecastRow holds the derived figures for one operating year. Year is
// the offset from financial close; year 0 is construction and carries no
// row, so rows run 1..horizon.
type ForecastRow struct {
	Year int

	// Output is annual energy in MWh for solar, billable hours for
	// consulting.
	Output float64

	Revenue         float64
	RetainerRevenue float64 // consulting categorization; zero for solar
	ProjectRevenue  float64 // consulting categorization; zero for solar
	OperatingCost   float64
	EBITDA          float64

	Depreciation  float64
	TaxableIncome float64
	Tax           float64
	NetIncome     float64

	Interest    float64
	Principal   float64
	DebtService float64

	// NetCashFlow is the cash flow to equity for the year.
	NetCashFlow float64
}

// Schedule is the ordered sequence of forecast rows for one run, indexed
// by operating year. Row i holds year i+1.
type Schedule []ForecastRow

// Years returns the number of operating years in the schedule.
func (s Schedule) Years() int {
	return len(s)
}

// EquitySeries builds the equity cash-flow series for IRR analysis: the
// equity contribution as an outlay at year 0 followed by each year's net
// cash flow to equity.
func (s Schedule) EquitySeries(fin FinancingStructure) []float64 {
	series := make([]float64, 0, len(s)+1)
	series = append(series, -fin.EquityContribution)
	for _, row := range s {
		series = append(series, row.NetCashFlow)
	}
	return series
}
