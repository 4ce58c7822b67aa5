package inputs

import "github.com/iwvelando/proforma-forecast/pkg/constants"

// SolarInputs holds all assumptions for one utility-scale solar project.
// Fractions (capacity factor, degradation, escalators, debt fraction, tax
// rate, ITC) are expressed as decimals in [0,1]; prices are $/MWh and
// costs are $/kW or absolute dollars as named. Range enforcement happens
// upstream of the engine.
type SolarInputs struct {
	// Site and resource
	ACCapacityMW     float64
	DCCapacityMW     float64
	CapacityFactor   float64
	PerformanceRatio float64
	Degradation      float64 // annual, compounding

	// Operating cost
	FixedOMPerKW    float64 // $/kW-yr on AC capacity
	InsurancePerKW  float64 // $/kW-yr on AC capacity
	LandLeaseAnnual float64 // flat $/yr

	// Revenue
	PPAPrice          float64 // $/MWh in year 1
	PPAEscalator      float64 // annual, compounding
	MerchantShare     float64 // fraction of energy sold merchant
	MerchantPrice     float64 // $/MWh in year 1
	MerchantEscalator float64 // annual, compounding; 0 holds the price flat

	// Capital cost
	ModuleCostPerKW     float64 // $/kW on DC capacity
	InverterCostPerKW   float64 // $/kW on DC capacity
	BOSCostPerKW        float64 // $/kW on DC capacity
	InterconnectCost    float64
	LandCost            float64
	DevelopmentCost     float64
	ContingencyFraction float64

	// Financing
	DebtFraction     float64
	DebtInterestRate float64
	DebtTenorYears   int

	// Tax
	TaxRate     float64
	ITCFraction float64
	MACRSClass  int

	// Analysis period
	HorizonYears int
}

// Sector tags the record for the solar engine.
func (s SolarInputs) Sector() Sector {
	return SectorSolar
}

// Horizon returns the number of operating years to project.
func (s SolarInputs) Horizon() int {
	return s.HorizonYears
}

// DefaultSolar returns a canonical 100 MWac single-axis project used for
// demonstration and smoke testing.
func DefaultSolar() SolarInputs {
	return SolarInputs{
		ACCapacityMW:     100,
		DCCapacityMW:     130,
		CapacityFactor:   0.25,
		PerformanceRatio: 1.0,
		Degradation:      0.005,

		FixedOMPerKW:    23.0,
		InsurancePerKW:  2.0,
		LandLeaseAnnual: 150000,

		PPAPrice:          30.0,
		PPAEscalator:      0.02,
		MerchantShare:     0.10,
		MerchantPrice:     40.0,
		MerchantEscalator: 0.0,

		ModuleCostPerKW:     350.0,
		InverterCostPerKW:   60.0,
		BOSCostPerKW:        200.0,
		InterconnectCost:    5000000,
		LandCost:            1500000,
		DevelopmentCost:     3000000,
		ContingencyFraction: 0.08,

		DebtFraction:     0.60,
		DebtInterestRate: 0.05,
		DebtTenorYears:   18,

		TaxRate:     0.26,
		ITCFraction: 0.30,
		MACRSClass:  5,

		HorizonYears: constants.DefaultSolarHorizonYears,
	}
}
