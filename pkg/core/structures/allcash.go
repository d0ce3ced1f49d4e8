package structures

// calculateAllCash models the unleveraged purchase: equity funds the entire
// project cost and every year's NOI flows straight to the buyer.
func calculateAllCash(inputs StructuredDealInputs) DealAnalysis {
	base := inputs.Base

	analysis := DealAnalysis{Structure: StructureAllCash}
	analysis.TotalProjectCost = base.PurchasePrice + base.ClosingCosts + base.RenovationBudget
	analysis.TotalDebt = 0
	analysis.TotalEquity = analysis.TotalProjectCost

	noi := inPlaceNOI(base, 0)
	yearOneMetrics(&analysis, base, noi, 0)

	op := projectOperating(base, 0)
	analysis.YearlyProjections = buildProjections(op, 0)

	// Exit: no loan to retire.
	analysis.SalePrice = capitalize(exitNOI(op, noi), base.ExitCapRatePercent)
	analysis.NetSaleProceeds = analysis.SalePrice * (1 - base.SellingCostPercent/100)

	analysis.IRR, analysis.EquityMultiple = irrAndMultiple(analysis.TotalEquity, analysis.YearlyProjections, analysis.NetSaleProceeds)
	if len(analysis.YearlyProjections) > 0 {
		last := analysis.YearlyProjections[len(analysis.YearlyProjections)-1]
		analysis.TotalProfit = last.CumulativeCashFlow + analysis.NetSaleProceeds - analysis.TotalEquity
	}

	return analysis
}
