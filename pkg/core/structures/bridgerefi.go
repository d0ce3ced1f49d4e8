package structures

import "deal_underwriter/pkg/core/finmath"

// calculateBridgeRefi models the BRRRR pattern in two phases sharing one
// year-0/year-1 transition: a short interest-only bridge sized off purchase
// price carries the deal through rehab, then a permanent amortizing loan
// sized off after-repair value takes it out. Bridge points and bridge carry
// fold into initial equity; the refinance event (cash-out and refi fee)
// lands in year 1 with the first stabilized cash flow.
func calculateBridgeRefi(inputs StructuredDealInputs) DealAnalysis {
	base := inputs.Base
	terms := inputs.BridgeRefi
	if terms == nil {
		terms = &BridgeRefiTerms{}
	}

	analysis := DealAnalysis{Structure: StructureBridgeRefi}

	// Phase 1: bridge sizing.
	bridgeLoan := base.PurchasePrice * terms.BridgeLTVPercent / 100
	bridgePoints := bridgeLoan * terms.BridgePoints / 100
	bridgeCarry := bridgeLoan * terms.BridgeRate * float64(terms.BridgeMonths) / finmath.MonthsPerYear

	analysis.TotalProjectCost = base.PurchasePrice + base.ClosingCosts + base.RenovationBudget + bridgePoints + bridgeCarry
	analysis.TotalEquity = analysis.TotalProjectCost - bridgeLoan

	// Phase 2: instantaneous stabilization — post-rehab rent bump, no
	// lease-up period.
	stabilizedNOI := inPlaceNOI(base, terms.RentBumpPercent)

	// Phase 3: permanent refinance off ARV.
	arv := terms.AfterRepairValue
	if arv == 0 {
		arv = capitalize(stabilizedNOI, base.ExitCapRatePercent)
	}
	refiLoan := arv * terms.RefiLTVPercent / 100
	refiFee := refiLoan * terms.RefiFeePercent / 100

	// Bridge is interest-only, so its balance at takeout is the original
	// principal. Negative cash-out means equity stays in the deal.
	cashOut := refiLoan - bridgeLoan
	analysis.CashOutOnRefi = &cashOut
	analysis.TotalDebt = refiLoan

	annualDebtService := finmath.MonthlyPayment(refiLoan, terms.RefiRate, terms.RefiAmortizationYears) * finmath.MonthsPerYear
	yearOneMetrics(&analysis, base, stabilizedNOI, annualDebtService)

	op := projectOperating(base, terms.RentBumpPercent)
	analysis.YearlyProjections = buildProjections(op, annualDebtService)

	// Fold the refinance event into year 1 and rebuild the running sum.
	if len(analysis.YearlyProjections) > 0 {
		analysis.YearlyProjections[0].CashFlow += cashOut - refiFee
		cumulative := 0.0
		for i := range analysis.YearlyProjections {
			cumulative += analysis.YearlyProjections[i].CashFlow
			analysis.YearlyProjections[i].CumulativeCashFlow = cumulative
		}
	}

	// Exit retires the permanent loan.
	analysis.SalePrice = capitalize(exitNOI(op, stabilizedNOI), base.ExitCapRatePercent)
	balanceAtExit := finmath.RemainingBalance(refiLoan, terms.RefiRate, terms.RefiAmortizationYears, base.HoldPeriodYears*finmath.MonthsPerYear)
	analysis.NetSaleProceeds = analysis.SalePrice*(1-base.SellingCostPercent/100) - balanceAtExit

	analysis.IRR, analysis.EquityMultiple = irrAndMultiple(analysis.TotalEquity, analysis.YearlyProjections, analysis.NetSaleProceeds)
	if len(analysis.YearlyProjections) > 0 {
		last := analysis.YearlyProjections[len(analysis.YearlyProjections)-1]
		analysis.TotalProfit = last.CumulativeCashFlow + analysis.NetSaleProceeds - analysis.TotalEquity
	}

	return analysis
}
