package structures

import "deal_underwriter/pkg/core/finmath"

// calculateAssumable models inheriting the seller's loan: balance and
// payment come from the original schedule (anchored to the original
// principal and term, not a fresh one), optionally layered with a
// supplemental loan at market terms. Rate savings measure the spread against
// financing the same balance at today's market rate.
func calculateAssumable(inputs StructuredDealInputs) DealAnalysis {
	base := inputs.Base
	terms := inputs.Assumable
	if terms == nil {
		terms = &AssumableTerms{}
	}

	analysis := DealAnalysis{Structure: StructureAssumable}

	// Assumed loan: where the seller's schedule stands today.
	assumedBalance := finmath.RemainingBalance(terms.OriginalPrincipal, terms.OriginalRate, terms.OriginalAmortizationYears, terms.MonthsElapsed)
	assumedPayment := finmath.MonthlyPayment(terms.OriginalPrincipal, terms.OriginalRate, terms.OriginalAmortizationYears)
	remainingTermMonths := terms.OriginalAmortizationYears*finmath.MonthsPerYear - terms.MonthsElapsed
	if remainingTermMonths < 0 {
		remainingTermMonths = 0
	}

	supplementalPayment := finmath.MonthlyPayment(terms.SupplementalAmount, terms.SupplementalRate, terms.SupplementalAmortizationYears)

	analysis.TotalDebt = assumedBalance + terms.SupplementalAmount
	analysis.TotalProjectCost = base.PurchasePrice + base.ClosingCosts + base.RenovationBudget
	analysis.TotalEquity = analysis.TotalProjectCost - analysis.TotalDebt

	annualDebtService := (assumedPayment + supplementalPayment) * finmath.MonthsPerYear

	// Balance-weighted blended rate.
	if analysis.TotalDebt != 0 {
		blended := (assumedBalance*terms.OriginalRate + terms.SupplementalAmount*terms.SupplementalRate) / analysis.TotalDebt
		analysis.BlendedRate = &blended
	}

	// Savings: market-rate debt service on the assumed balance vs. the
	// inherited payment, accrued over min(hold, remaining term).
	marketPayment := finmath.MonthlyPayment(assumedBalance, base.MarketMortgageRate, terms.OriginalAmortizationYears)
	annualSavings := (marketPayment - assumedPayment) * finmath.MonthsPerYear
	if remainingTermMonths == 0 {
		// Nothing left to assume: a paid-off legacy loan saves nothing.
		annualSavings = 0
	}
	savingsYears := base.HoldPeriodYears
	if remainingTermYears := remainingTermMonths / finmath.MonthsPerYear; remainingTermYears < savingsYears {
		savingsYears = remainingTermYears
	}
	totalSavings := annualSavings * float64(savingsYears)
	analysis.AnnualRateSavings = &annualSavings
	analysis.TotalRateSavings = &totalSavings

	noi := inPlaceNOI(base, 0)
	yearOneMetrics(&analysis, base, noi, annualDebtService)

	op := projectOperating(base, 0)
	analysis.YearlyProjections = buildProjections(op, annualDebtService)

	// Exit: both schedules keep amortizing through the hold.
	analysis.SalePrice = capitalize(exitNOI(op, noi), base.ExitCapRatePercent)
	assumedAtExit := finmath.RemainingBalance(terms.OriginalPrincipal, terms.OriginalRate, terms.OriginalAmortizationYears,
		terms.MonthsElapsed+base.HoldPeriodYears*finmath.MonthsPerYear)
	supplementalAtExit := finmath.RemainingBalance(terms.SupplementalAmount, terms.SupplementalRate, terms.SupplementalAmortizationYears,
		base.HoldPeriodYears*finmath.MonthsPerYear)
	analysis.NetSaleProceeds = analysis.SalePrice*(1-base.SellingCostPercent/100) - assumedAtExit - supplementalAtExit

	analysis.IRR, analysis.EquityMultiple = irrAndMultiple(analysis.TotalEquity, analysis.YearlyProjections, analysis.NetSaleProceeds)
	if len(analysis.YearlyProjections) > 0 {
		last := analysis.YearlyProjections[len(analysis.YearlyProjections)-1]
		analysis.TotalProfit = last.CumulativeCashFlow + analysis.NetSaleProceeds - analysis.TotalEquity
	}

	return analysis
}
