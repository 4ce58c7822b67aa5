package projection

import (
	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/pkg/constants"
	"github.com/iwvelando/proforma-forecast/pkg/macrs"
	"go.uber.org/zap"
)

// buildSolar unrolls a solar project into its annual schedule.
//
// Tax treatment: negative taxable income is floored at zero with no loss
// carryforward. The ITC is modeled as a basis reduction; net CapEx drives
// both the depreciable basis and the debt/equity split, and no year-0
// cash credit is applied.
func (b *Builder) buildSolar(in inputs.SolarInputs) (Schedule, FinancingStructure, error) {
	if in.HorizonYears <= 0 {
		return nil, FinancingStructure{}, invalidAssumption("horizonYears",
			"forecast horizon must be positive, got %d", in.HorizonYears)
	}
	if in.DebtFraction < 0 || in.DebtFraction > 1 {
		return nil, FinancingStructure{}, invalidAssumption("debtFraction",
			"debt fraction must be within [0,1], got %g", in.DebtFraction)
	}
	if in.DebtFraction > 0 && in.DebtTenorYears <= 0 {
		return nil, FinancingStructure{}, invalidAssumption("debtTenorYears",
			"debt tenor must be positive when debt fraction is %g, got %d", in.DebtFraction, in.DebtTenorYears)
	}
	if in.MACRSClass != 0 && !macrs.Valid(in.MACRSClass) {
		return nil, FinancingStructure{}, invalidAssumption("macrsClass",
			"no published MACRS schedule for class %d", in.MACRSClass)
	}

	fin := solarFinancing(in)
	b.logger.Debug("derived solar financing structure",
		zap.String("op", "projection.buildSolar"),
		zap.Float64("totalCapex", fin.TotalCapEx),
		zap.Float64("netCapex", fin.NetCapEx),
		zap.Float64("debtPrincipal", fin.DebtPrincipal),
		zap.Float64("equityContribution", fin.EquityContribution),
	)

	acKW := in.ACCapacityMW * constants.KWPerMW
	operatingCost := acKW*(in.FixedOMPerKW+in.InsurancePerKW) + in.LandLeaseAnnual

	schedule := make(Schedule, 0, in.HorizonYears)
	energy := acKW * in.CapacityFactor * constants.HoursPerYear * in.PerformanceRatio / constants.KWPerMW // MWh
	ppaPrice := in.PPAPrice
	merchantPrice := in.MerchantPrice

	for year := 1; year <= in.HorizonYears; year++ {
		if year > 1 {
			energy *= 1 - in.Degradation
			ppaPrice *= 1 + in.PPAEscalator
			if in.MerchantEscalator > 0 {
				merchantPrice *= 1 + in.MerchantEscalator
			}
		}

		row := ForecastRow{Year: year, Output: energy}

		ppaEnergy := energy * (1 - in.MerchantShare)
		merchantEnergy := energy * in.MerchantShare
		row.Revenue = ppaEnergy*ppaPrice + merchantEnergy*merchantPrice
		row.OperatingCost = operatingCost
		row.EBITDA = row.Revenue - row.OperatingCost

		row.Depreciation = fin.NetCapEx * macrs.Rate(in.MACRSClass, year)

		payment := fin.PaymentForYear(year)
		row.Interest = payment.Interest
		row.Principal = payment.Principal
		row.DebtService = payment.Payment

		row.TaxableIncome = row.EBITDA - row.Depreciation - row.Interest
		taxable := row.TaxableIncome
		if taxable < 0 {
			taxable = 0
		}
		row.Tax = taxable * in.TaxRate
		row.NetIncome = row.TaxableIncome - row.Tax
		row.NetCashFlow = row.EBITDA - row.DebtService - row.Tax

		schedule = append(schedule, row)
	}

	return schedule, fin, nil
}

// solarFinancing derives the capital stack from the CapEx assumptions.
func solarFinancing(in inputs.SolarInputs) FinancingStructure {
	dcKW := in.DCCapacityMW * constants.KWPerMW
	baseCapEx := dcKW*(in.ModuleCostPerKW+in.InverterCostPerKW+in.BOSCostPerKW) +
		in.InterconnectCost + in.LandCost + in.DevelopmentCost
	totalCapEx := baseCapEx * (1 + in.ContingencyFraction)
	netCapEx := totalCapEx * (1 - in.ITCFraction)

	debt := netCapEx * in.DebtFraction
	fin := FinancingStructure{
		TotalCapEx:         totalCapEx,
		NetCapEx:           netCapEx,
		DebtPrincipal:      debt,
		EquityContribution: netCapEx - debt,
		DebtInterestRate:   in.DebtInterestRate,
		DebtTenorYears:     in.DebtTenorYears,
	}
	fin.Amortization = amortize(debt, in.DebtInterestRate, in.DebtTenorYears, in.HorizonYears)
	return fin
}
