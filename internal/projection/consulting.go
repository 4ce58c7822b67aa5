package projection

import (
	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/pkg/constants"
	"go.uber.org/zap"
)

// buildConsulting unrolls a professional-services firm into its annual
// schedule. Staffing is constant over the horizon, so revenue and cost
// are flat; cash flow still moves in year 1 when the working-capital
// balance first builds.
//
// Tax treatment matches the solar engine: negative EBITDA is floored at
// zero for tax, no loss carryforward.
func (b *Builder) buildConsulting(in inputs.ConsultingInputs) (Schedule, FinancingStructure, error) {
	if in.HorizonYears <= 0 {
		return nil, FinancingStructure{}, invalidAssumption("horizonYears",
			"forecast horizon must be positive, got %d", in.HorizonYears)
	}
	if in.TotalHeadcount() <= 0 {
		return nil, FinancingStructure{}, invalidAssumption("headcount",
			"at least one staff level needs positive headcount, got %d total", in.TotalHeadcount())
	}

	billableHours := 0.0
	revenue := 0.0
	salaries := 0.0
	for _, level := range []inputs.StaffLevel{in.Partners, in.Managers, in.Analysts} {
		hours := float64(level.Headcount) * constants.AnnualBillableHours * level.Utilization
		billableHours += hours
		revenue += hours * level.BillingRate * level.Realization
		salaries += float64(level.Headcount) * level.Salary
	}

	operatingCost := salaries + in.Overhead.Total()
	ebitda := revenue - operatingCost

	taxable := ebitda
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * in.TaxRate
	netIncome := ebitda - tax

	b.logger.Debug("derived consulting income statement",
		zap.String("op", "projection.buildConsulting"),
		zap.Float64("revenue", revenue),
		zap.Float64("operatingCost", operatingCost),
		zap.Float64("ebitda", ebitda),
		zap.Float64("netIncome", netIncome),
	)

	fin := FinancingStructure{
		EquityContribution: in.EquityInvestment,
		Amortization:       amortize(0, 0, 0, in.HorizonYears),
	}

	// Net working capital balance implied by the day-count assumptions;
	// WIP and receivables are tied to revenue, payables to cost.
	nwc := revenue*(in.WorkingCapital.WIPDays+in.WorkingCapital.ARDays)/constants.DaysPerYear -
		operatingCost*in.WorkingCapital.APDays/constants.DaysPerYear

	schedule := make(Schedule, 0, in.HorizonYears)
	previousNWC := 0.0
	for year := 1; year <= in.HorizonYears; year++ {
		row := ForecastRow{
			Year:            year,
			Output:          billableHours,
			Revenue:         revenue,
			RetainerRevenue: revenue * in.RetainerFraction,
			ProjectRevenue:  revenue * in.ProjectFraction,
			OperatingCost:   operatingCost,
			EBITDA:          ebitda,
			TaxableIncome:   ebitda,
			Tax:             tax,
			NetIncome:       netIncome,
		}

		deltaNWC := nwc - previousNWC
		row.NetCashFlow = netIncome - deltaNWC
		previousNWC = nwc

		schedule = append(schedule, row)
	}

	return schedule, fin, nil
}
