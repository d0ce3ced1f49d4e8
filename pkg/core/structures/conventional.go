package structures

import "deal_underwriter/pkg/core/finmath"

// calculateConventional models a single loan at market terms: the standard
// LTV/rate/amortization capital stack.
func calculateConventional(inputs StructuredDealInputs) DealAnalysis {
	base := inputs.Base
	terms := inputs.Conventional
	if terms == nil {
		terms = &ConventionalTerms{}
	}

	analysis := DealAnalysis{Structure: StructureConventional}

	loanAmount := base.PurchasePrice * terms.LTVPercent / 100
	originationFee := loanAmount * terms.OriginationFeePercent / 100

	analysis.TotalProjectCost = base.PurchasePrice + base.ClosingCosts + base.RenovationBudget + originationFee
	analysis.TotalDebt = loanAmount
	analysis.TotalEquity = analysis.TotalProjectCost - loanAmount

	var annualDebtService float64
	if terms.InterestOnly {
		annualDebtService = finmath.InterestOnlyPayment(loanAmount, terms.InterestRate) * finmath.MonthsPerYear
	} else {
		annualDebtService = finmath.MonthlyPayment(loanAmount, terms.InterestRate, terms.AmortizationYears) * finmath.MonthsPerYear
	}

	noi := inPlaceNOI(base, 0)
	yearOneMetrics(&analysis, base, noi, annualDebtService)

	op := projectOperating(base, 0)
	analysis.YearlyProjections = buildProjections(op, annualDebtService)

	// Exit.
	analysis.SalePrice = capitalize(exitNOI(op, noi), base.ExitCapRatePercent)
	balanceAtExit := loanAmount
	if !terms.InterestOnly {
		balanceAtExit = finmath.RemainingBalance(loanAmount, terms.InterestRate, terms.AmortizationYears, base.HoldPeriodYears*finmath.MonthsPerYear)
	}
	analysis.NetSaleProceeds = analysis.SalePrice*(1-base.SellingCostPercent/100) - balanceAtExit

	analysis.IRR, analysis.EquityMultiple = irrAndMultiple(analysis.TotalEquity, analysis.YearlyProjections, analysis.NetSaleProceeds)
	if len(analysis.YearlyProjections) > 0 {
		last := analysis.YearlyProjections[len(analysis.YearlyProjections)-1]
		analysis.TotalProfit = last.CumulativeCashFlow + analysis.NetSaleProceeds - analysis.TotalEquity
	}

	return analysis
}
