package inputs

import "github.com/iwvelando/proforma-forecast/pkg/constants"

// StaffLevel describes one tier of billable staff.
type StaffLevel struct {
	Headcount   int
	BillingRate float64 // $/hour
	Salary      float64 // $/year
	Utilization float64 // fraction of available hours billed
	Realization float64 // fraction of billed value collected
}

// OverheadCosts groups the flat annual overhead line items.
type OverheadCosts struct {
	Rent          float64
	Software      float64
	Marketing     float64
	Travel        float64
	AdminSalaries float64
}

// Total sums all overhead line items.
func (o OverheadCosts) Total() float64 {
	return o.Rent + o.Software + o.Marketing + o.Travel + o.AdminSalaries
}

// WorkingCapitalDays holds the day-count assumptions that drive the net
// working capital adjustment to cash flow.
type WorkingCapitalDays struct {
	WIPDays float64 // unbilled work in progress, tied to revenue
	ARDays  float64 // accounts receivable, tied to revenue
	APDays  float64 // accounts payable, tied to operating cost
}

// ConsultingInputs holds all assumptions for one professional-services
// firm. Staffing is assumed constant over the analysis period.
type ConsultingInputs struct {
	// Staffing
	Partners StaffLevel
	Managers StaffLevel
	Analysts StaffLevel

	// Revenue mix; categorization only, the total is unaffected
	RetainerFraction float64
	ProjectFraction  float64

	// Cost
	Overhead OverheadCosts

	// Working capital
	WorkingCapital WorkingCapitalDays

	// Financing
	EquityInvestment float64

	// Tax
	TaxRate float64

	// Analysis period
	HorizonYears int
}

// Sector tags the record for the consulting engine.
func (c ConsultingInputs) Sector() Sector {
	return SectorConsulting
}

// Horizon returns the number of operating years to project.
func (c ConsultingInputs) Horizon() int {
	return c.HorizonYears
}

// TotalHeadcount sums headcount across all staff levels.
func (c ConsultingInputs) TotalHeadcount() int {
	return c.Partners.Headcount + c.Managers.Headcount + c.Analysts.Headcount
}

// DefaultConsulting returns a canonical mid-size firm with a 3/6/12
// staffing pyramid used for demonstration and smoke testing.
func DefaultConsulting() ConsultingInputs {
	return ConsultingInputs{
		Partners: StaffLevel{Headcount: 3, BillingRate: 350.0, Salary: 250000, Utilization: 0.6, Realization: 0.9},
		Managers: StaffLevel{Headcount: 6, BillingRate: 250.0, Salary: 150000, Utilization: 0.7, Realization: 0.9},
		Analysts: StaffLevel{Headcount: 12, BillingRate: 150.0, Salary: 90000, Utilization: 0.8, Realization: 0.85},

		RetainerFraction: 0.6,
		ProjectFraction:  0.4,

		Overhead: OverheadCosts{
			Rent:          300000,
			Software:      100000,
			Marketing:     200000,
			Travel:        150000,
			AdminSalaries: 400000,
		},

		WorkingCapital: WorkingCapitalDays{
			WIPDays: 30,
			ARDays:  45,
			APDays:  15,
		},

		EquityInvestment: 1000000,

		TaxRate: 0.26,

		HorizonYears: constants.DefaultConsultingHorizonYears,
	}
}
