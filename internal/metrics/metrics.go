// Package metrics reduces forecast schedules to the summary figures an
// investor or lender reads first: aggregate totals and the equity
// internal rate of return.
package metrics

import (
	"github.com/iwvelando/proforma-forecast/internal/projection"
	"github.com/iwvelando/proforma-forecast/pkg/irr"
)

// SummaryTotals aggregates a schedule across the full horizon. Values are
// in the currency of the inputs; no unit conversion happens here.
type SummaryTotals struct {
	Revenue       float64
	OperatingCost float64
	EBITDA        float64
	Depreciation  float64
	Tax           float64
	NetIncome     float64
	DebtService   float64
	NetCashFlow   float64
}

// Summarize totals the schedule's line items across the horizon.
func Summarize(schedule projection.Schedule) SummaryTotals {
	var totals SummaryTotals
	for _, row := range schedule {
		totals.Revenue += row.Revenue
		totals.OperatingCost += row.OperatingCost
		totals.EBITDA += row.EBITDA
		totals.Depreciation += row.Depreciation
		totals.Tax += row.Tax
		totals.NetIncome += row.NetIncome
		totals.DebtService += row.DebtService
		totals.NetCashFlow += row.NetCashFlow
	}
	return totals
}

// EquityIRR solves for the discount rate at which the equity cash-flow
// series has zero net present value. The series is the equity contribution
// as a year-0 outlay followed by each year's net cash flow to equity. A
// series that cannot bracket a root fails with *irr.NoConvergenceError
// rather than returning a spurious rate.
func EquityIRR(schedule projection.Schedule, fin projection.FinancingStructure) (float64, error) {
	return irr.Solve(schedule.EquitySeries(fin))
}
