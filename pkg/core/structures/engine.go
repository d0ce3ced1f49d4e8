package structures

import (
	"math"

	"deal_underwriter/pkg/core/finmath"
)

// operatingYear is one year of the structure-level operating model. The
// structure engine works on aggregate income/expense figures; the itemized
// breakdown lives in the base pipeline.
type operatingYear struct {
	egi      float64
	expenses float64
	noi      float64
}

// inPlaceNOI is the ungrown year-0 NOI, optionally with an instantaneous
// income bump (the BRRRR post-rehab stabilization).
func inPlaceNOI(base BaseDealTerms, incomeBumpPercent float64) float64 {
	gross := base.GrossAnnualIncome * (1 + incomeBumpPercent/100)
	egi := gross * (1 - base.VacancyPercent/100)
	return egi - base.OperatingExpenses
}

// projectOperating compounds the aggregates across the hold. Same convention
// as the base pipeline: year y sits (1+g)^y above the in-place baseline.
func projectOperating(base BaseDealTerms, incomeBumpPercent float64) []operatingYear {
	gross := base.GrossAnnualIncome * (1 + incomeBumpPercent/100)
	years := make([]operatingYear, 0, base.HoldPeriodYears)

	for y := 1; y <= base.HoldPeriodYears; y++ {
		rentFactor := math.Pow(1+base.RentGrowthPercent/100, float64(y))
		expenseFactor := math.Pow(1+base.ExpenseGrowthPercent/100, float64(y))

		egi := gross * (1 - base.VacancyPercent/100) * rentFactor
		expenses := base.OperatingExpenses * expenseFactor
		years = append(years, operatingYear{egi: egi, expenses: expenses, noi: egi - expenses})
	}

	return years
}

// buildProjections turns operating years and a flat annual debt service into
// the output timeline.
func buildProjections(op []operatingYear, annualDebtService float64) []YearlyProjection {
	projections := make([]YearlyProjection, 0, len(op))
	cumulative := 0.0

	for i, year := range op {
		cashFlow := year.noi - annualDebtService
		cumulative += cashFlow
		projections = append(projections, YearlyProjection{
			Year:                 i + 1,
			EffectiveGrossIncome: year.egi,
			OperatingExpenses:    year.expenses,
			NOI:                  year.noi,
			DebtService:          annualDebtService,
			CashFlow:             cashFlow,
			CumulativeCashFlow:   cumulative,
		})
	}

	return projections
}

// exitNOI is the final projected year's NOI, or the in-place NOI for a
// zero-year hold.
func exitNOI(op []operatingYear, fallback float64) float64 {
	if len(op) == 0 {
		return fallback
	}
	return op[len(op)-1].noi
}

// capitalize turns an NOI into a value at a percent cap rate, guarding the
// zero cap.
func capitalize(noi, capRatePercent float64) float64 {
	if capRatePercent == 0 {
		return 0
	}
	return noi / (capRatePercent / 100)
}

// irrAndMultiple runs the party's full contribution-then-distribution vector
// through the shared root finder. Exit proceeds are lumped into the final
// year. The multiple counts only positive distributions.
func irrAndMultiple(equity float64, projections []YearlyProjection, exitProceeds float64) (irrPercent, multiple float64) {
	vector := make([]float64, 0, len(projections)+1)
	vector = append(vector, -equity)

	totalDistributed := 0.0
	for i, p := range projections {
		amount := p.CashFlow
		if i == len(projections)-1 {
			amount += exitProceeds
		}
		vector = append(vector, amount)
		if amount > 0 {
			totalDistributed += amount
		}
	}

	irrPercent = finmath.IRR(vector) * 100
	if equity != 0 {
		multiple = totalDistributed / equity
	}
	return irrPercent, multiple
}

// breakEvenOccupancy is the occupancy at which year-1 income just covers
// expenses plus debt service, as a percent of gross potential income.
func breakEvenOccupancy(base BaseDealTerms, annualDebtService float64) float64 {
	if base.GrossAnnualIncome == 0 {
		return 0
	}
	return (base.OperatingExpenses + annualDebtService) / base.GrossAnnualIncome * 100
}

// yearOneMetrics fills the shared year-1 block on a DealAnalysis.
func yearOneMetrics(analysis *DealAnalysis, base BaseDealTerms, noi, annualDebtService float64) {
	analysis.YearOneNOI = noi
	if base.PurchasePrice != 0 {
		analysis.CapRate = noi / base.PurchasePrice * 100
	}
	if analysis.TotalEquity != 0 {
		analysis.CashOnCash = (noi - annualDebtService) / analysis.TotalEquity * 100
	}
	if annualDebtService != 0 {
		analysis.DSCR = noi / annualDebtService
	}
	analysis.BreakEvenOccupancy = breakEvenOccupancy(base, annualDebtService)
}
