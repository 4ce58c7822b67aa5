package projection

import "math"

// DebtPayment holds the debt-service components for one operating year.
type DebtPayment struct {
	Year             int
	Payment          float64
	Interest         float64
	Principal        float64
	RemainingBalance float64
}

// FinancingStructure captures the capital stack derived once per run:
// total and net capital cost, the debt/equity split, and the amortization
// schedule aligned to the forecast years. Years past the tenor carry zero
// payments.
type FinancingStructure struct {
	TotalCapEx         float64
	NetCapEx           float64
	DebtPrincipal      float64
	EquityContribution float64
	DebtInterestRate   float64
	DebtTenorYears     int
	Amortization       []DebtPayment
}

// PaymentForYear returns the debt payment for the given operating year
// (1-based), or a zero payment when the year is outside the schedule.
func (f FinancingStructure) PaymentForYear(year int) DebtPayment {
	if year < 1 || year > len(f.Amortization) {
		return DebtPayment{Year: year}
	}
	return f.Amortization[year-1]
}

// annualDebtPayment computes the level annual payment that retires the
// principal over the tenor at the stated rate. Zero-rate debt divides the
// principal evenly.
func annualDebtPayment(principal, rate float64, tenorYears int) float64 {
	if rate == 0 {
		return principal / float64(tenorYears)
	}
	power := math.Pow(1+rate, float64(tenorYears))
	annuityFactor := rate * power / (power - 1)
	return principal * annuityFactor
}

// amortize builds a level-payment amortization schedule covering the full
// horizon; years after the tenor are zero rows. The caller guarantees a
// positive tenor whenever principal is positive.
func amortize(principal, rate float64, tenorYears, horizonYears int) []DebtPayment {
	schedule := make([]DebtPayment, horizonYears)
	if principal <= 0 {
		for year := 1; year <= horizonYears; year++ {
			schedule[year-1] = DebtPayment{Year: year}
		}
		return schedule
	}

	payment := annualDebtPayment(principal, rate, tenorYears)
	balance := principal
	for year := 1; year <= horizonYears; year++ {
		row := DebtPayment{Year: year}
		if year <= tenorYears {
			row.Interest = balance * rate
			row.Principal = payment - row.Interest
			if year == tenorYears {
				// Absorb machine error so the final payment exactly
				// retires the balance.
				row.Principal = balance
				row.Payment = row.Principal + row.Interest
			} else {
				row.Payment = payment
			}
			balance -= row.Principal
			if balance < 0 {
				balance = 0
			}
		}
		row.RemainingBalance = balance
		schedule[year-1] = row
	}
	return schedule
}
