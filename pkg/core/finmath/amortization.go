package finmath

import "math"

// MonthsPerYear converts annual terms to the monthly schedule.
const MonthsPerYear = 12

// MonthlyPayment returns the fully-amortizing monthly payment for a loan
// (standard annuity formula). A zero rate divides principal evenly across
// the schedule instead of producing NaN.
func MonthlyPayment(principal, annualRate float64, amortizationYears int) float64 {
	n := float64(amortizationYears * MonthsPerYear)
	if n == 0 {
		return 0
	}

	monthlyRate := annualRate / MonthsPerYear
	if monthlyRate == 0 {
		return principal / n
	}

	factor := math.Pow(1.0+monthlyRate, n)
	return principal * monthlyRate * factor / (factor - 1.0)
}

// InterestOnlyPayment returns the monthly interest-only payment.
func InterestOnlyPayment(principal, annualRate float64) float64 {
	return principal * annualRate / MonthsPerYear
}

// RemainingBalance evaluates the closed-form remaining balance after
// monthsElapsed payments on an amortizing schedule:
//
//	B(m) = P * ((1+i)^n - (1+i)^m) / ((1+i)^n - 1)
//
// The schedule is anchored to the original principal and term, which is what
// assumed-mortgage math needs (the buyer inherits the seller's schedule, not
// a fresh one). Past the end of the schedule the balance is 0.
func RemainingBalance(principal, annualRate float64, amortizationYears, monthsElapsed int) float64 {
	n := amortizationYears * MonthsPerYear
	if n == 0 || monthsElapsed >= n {
		return 0
	}
	if monthsElapsed <= 0 {
		return principal
	}

	monthlyRate := annualRate / MonthsPerYear
	if monthlyRate == 0 {
		return principal * (1.0 - float64(monthsElapsed)/float64(n))
	}

	fn := math.Pow(1.0+monthlyRate, float64(n))
	fm := math.Pow(1.0+monthlyRate, float64(monthsElapsed))
	return principal * (fn - fm) / (fn - 1.0)
}
