// Package irr provides net-present-value and internal-rate-of-return
// calculations over annual cash-flow series. The solver uses Newton's
// method with a bisection fallback over a bounded rate range so that a
// failure to converge is a modeled error rather than a NaN.
package irr

import (
	"fmt"
	"math"
)

const (
	// MinRate is the lower bound of the solved rate range (-99%).
	MinRate = -0.99

	// MaxRate is the upper bound of the solved rate range (+1000%).
	MaxRate = 10.0

	// maxNewtonIterations bounds the Newton phase before falling back.
	maxNewtonIterations = 50

	// maxBisectionIterations bounds the bisection fallback.
	maxBisectionIterations = 200

	// rateTolerance is the convergence tolerance on the solved rate.
	rateTolerance = 1e-9
)

// NoConvergenceError indicates the solver could not bracket or converge on
// a root for the given cash-flow series. The offending series is carried
// for diagnosis.
type NoConvergenceError struct {
	Series []float64
	Reason string
}

func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("irr did not converge: %s (series length %d)", e.Reason, len(e.Series))
}

// NPV computes the net present value of the cash-flow series at the given
// annual discount rate. The first element is year 0 and is undiscounted.
func NPV(rate float64, cashflows []float64) float64 {
	npv := 0.0
	discount := 1.0
	for _, cf := range cashflows {
		npv += cf / discount
		discount *= 1 + rate
	}
	return npv
}

// npvDerivative computes d(NPV)/d(rate) for Newton's method.
func npvDerivative(rate float64, cashflows []float64) float64 {
	deriv := 0.0
	for year, cf := range cashflows {
		if year == 0 {
			continue
		}
		deriv -= float64(year) * cf / math.Pow(1+rate, float64(year+1))
	}
	return deriv
}

// Solve finds the rate at which the series' NPV is zero. It requires the
// series to contain both positive and negative entries; without a sign
// change no root can be bracketed and a *NoConvergenceError is returned.
func Solve(cashflows []float64) (float64, error) {
	if len(cashflows) < 2 {
		return 0, &NoConvergenceError{Series: copySeries(cashflows), Reason: "series has fewer than two entries"}
	}

	hasPositive := false
	hasNegative := false
	for _, cf := range cashflows {
		if cf > 0 {
			hasPositive = true
		} else if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, &NoConvergenceError{Series: copySeries(cashflows), Reason: "series has no sign change"}
	}

	// Convergence is judged on NPV relative to the series' scale so the
	// result is invariant to uniform scaling of the cash flows.
	scale := 0.0
	for _, cf := range cashflows {
		scale += math.Abs(cf)
	}
	npvTolerance := scale * 1e-10

	if rate, ok := newton(cashflows, npvTolerance); ok {
		return rate, nil
	}

	return bisect(cashflows, npvTolerance)
}

// newton runs Newton's method from a conventional starting guess. It
// reports failure when the derivative degenerates or the iterate leaves
// the solved range, letting the caller fall back to bisection.
func newton(cashflows []float64, npvTolerance float64) (float64, bool) {
	rate := 0.1
	for i := 0; i < maxNewtonIterations; i++ {
		value := NPV(rate, cashflows)
		if math.Abs(value) <= npvTolerance {
			return rate, true
		}
		deriv := npvDerivative(rate, cashflows)
		if deriv == 0 || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
			return 0, false
		}
		next := rate - value/deriv
		if math.IsNaN(next) || next <= MinRate || next >= MaxRate {
			return 0, false
		}
		if math.Abs(next-rate) <= rateTolerance {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// bisect locates a sign change of NPV over [MinRate, MaxRate] by grid scan
// and narrows it by bisection.
func bisect(cashflows []float64, npvTolerance float64) (float64, error) {
	const gridSteps = 1000
	step := (MaxRate - MinRate) / gridSteps

	lo := MinRate
	loValue := NPV(lo, cashflows)
	hi := lo
	found := false
	for i := 1; i <= gridSteps; i++ {
		hi = MinRate + float64(i)*step
		hiValue := NPV(hi, cashflows)
		if loValue == 0 {
			return lo, nil
		}
		if loValue*hiValue < 0 {
			found = true
			break
		}
		lo = hi
		loValue = hiValue
	}
	if !found {
		return 0, &NoConvergenceError{Series: copySeries(cashflows), Reason: "no root in bounded rate range"}
	}

	for i := 0; i < maxBisectionIterations; i++ {
		mid := (lo + hi) / 2
		midValue := NPV(mid, cashflows)
		if math.Abs(midValue) <= npvTolerance || (hi-lo)/2 <= rateTolerance {
			return mid, nil
		}
		if loValue*midValue < 0 {
			hi = mid
		} else {
			lo = mid
			loValue = midValue
		}
	}
	return (lo + hi) / 2, nil
}

func copySeries(cashflows []float64) []float64 {
	out := make([]float64, len(cashflows))
	copy(out, cashflows)
	return out
}
