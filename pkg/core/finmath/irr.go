// Package finmath provides the shared numeric kernel for the underwriting
// engines: NPV/IRR root finding and the amortization closed forms. Both the
// base deal calculator and the structure dispatcher consume this package so
// the two sides can never drift apart.
package finmath

import "math"

// Solver constants. Newton-Raphson handles the common case in a handful of
// iterations; bisection is the guaranteed-termination fallback.
const (
	irrInitialGuess = 0.10
	irrMaxNewton    = 100
	irrNPVTolerance = 1e-7

	// Clamp bounds: a Newton step that escapes [-0.99, 10] is reset inward
	// instead of diverging.
	irrRateFloor      = -0.99
	irrRateCeiling    = 10.0
	irrFloorReset     = -0.5
	irrCeilingReset   = 5.0
	derivativeFloor   = 1e-12
	bisectLow         = -0.5
	bisectHigh        = 5.0
	bisectMaxIter     = 200
	bisectNPVTolerace = 1e-6
)

// NPV discounts the cash-flow vector at the given periodic rate.
// cashFlows[0] sits at t=0 (undiscounted), cashFlows[i] at t=i.
func NPV(rate float64, cashFlows []float64) float64 {
	npv := 0.0
	for i, cf := range cashFlows {
		npv += cf / math.Pow(1.0+rate, float64(i))
	}
	return npv
}

// npvDerivative is the analytic d(NPV)/d(rate).
func npvDerivative(rate float64, cashFlows []float64) float64 {
	d := 0.0
	for i, cf := range cashFlows {
		if i == 0 {
			continue
		}
		d -= float64(i) * cf / math.Pow(1.0+rate, float64(i+1))
	}
	return d
}

// IRR solves for the periodic rate with NPV(rate) ~= 0.
//
// Newton-Raphson from a 10% guess with the analytic derivative; if the
// derivative flattens out or the iteration budget runs out, fall back to
// bisection over [-0.5, 5]. Always returns a number — for vectors with no
// sign change the result is numerically valid but economically meaningless,
// which is the caller's problem (the engine performs no input validation).
func IRR(cashFlows []float64) float64 {
	rate := irrInitialGuess

	for i := 0; i < irrMaxNewton; i++ {
		npv := NPV(rate, cashFlows)
		if math.Abs(npv) < irrNPVTolerance {
			return rate
		}

		deriv := npvDerivative(rate, cashFlows)
		if math.Abs(deriv) < derivativeFloor {
			// Flat region: Newton would blow up. Bail to bisection.
			break
		}

		rate -= npv / deriv

		// Reset runaway steps back inside the search band.
		if rate < irrRateFloor {
			rate = irrFloorReset
		} else if rate > irrRateCeiling {
			rate = irrCeilingReset
		}
	}

	return bisectIRR(cashFlows)
}

// bisectIRR narrows [-0.5, 5] on the NPV sign. NPV is decreasing in rate for
// investment-shaped vectors, so a positive NPV means the rate is too low.
func bisectIRR(cashFlows []float64) float64 {
	low, high := bisectLow, bisectHigh

	for i := 0; i < bisectMaxIter; i++ {
		mid := (low + high) / 2.0
		npv := NPV(mid, cashFlows)
		if math.Abs(npv) < bisectNPVTolerace {
			return mid
		}
		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}

	return (low + high) / 2.0
}
