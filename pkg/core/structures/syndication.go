package structures

import (
	"math"

	"deal_underwriter/pkg/core/finmath"
)

// calculateSyndication models the sponsored deal: conventional debt plus a
// GP/LP equity split, the five sponsor fee types charged against cash flow
// or sale proceeds, and an inline 2-tier waterfall — preferred return, then
// a promote split, with an exit-only test that raises the GP's promote share
// once a trial LP IRR clears the hurdle. The standalone promote engine
// models the full N-tier waterfall; this one is deliberately simpler.
func calculateSyndication(inputs StructuredDealInputs) DealAnalysis {
	base := inputs.Base
	terms := inputs.Syndication
	if terms == nil {
		terms = &SyndicationTerms{}
	}
	fin := terms.Financing

	analysis := DealAnalysis{Structure: StructureSyndication}

	// 1. Capital stack with capitalized sponsor fees.
	loanAmount := base.PurchasePrice * fin.LTVPercent / 100
	originationFee := loanAmount * fin.OriginationFeePercent / 100
	acquisitionFee := base.PurchasePrice * terms.AcquisitionFeePercent / 100
	constructionFee := base.RenovationBudget * terms.ConstructionMgmtFeePercent / 100

	analysis.TotalProjectCost = base.PurchasePrice + base.ClosingCosts + base.RenovationBudget +
		originationFee + acquisitionFee + constructionFee
	analysis.TotalDebt = loanAmount
	analysis.TotalEquity = analysis.TotalProjectCost - loanAmount

	gpEquity := analysis.TotalEquity * terms.GPEquityPercent / 100
	lpEquity := analysis.TotalEquity * terms.LPEquityPercent / 100

	var annualDebtService float64
	if fin.InterestOnly {
		annualDebtService = finmath.InterestOnlyPayment(loanAmount, fin.InterestRate) * finmath.MonthsPerYear
	} else {
		annualDebtService = finmath.MonthlyPayment(loanAmount, fin.InterestRate, fin.AmortizationYears) * finmath.MonthsPerYear
	}

	noi := inPlaceNOI(base, 0)
	yearOneMetrics(&analysis, base, noi, annualDebtService)

	// 2. Projections net of the asset-management fee (a percent of that
	// year's gross income).
	op := projectOperating(base, 0)
	analysis.YearlyProjections = buildProjections(op, annualDebtService)

	assetMgmtFees := 0.0
	cumulative := 0.0
	for i := range analysis.YearlyProjections {
		grossIncome := base.GrossAnnualIncome * math.Pow(1+base.RentGrowthPercent/100, float64(i+1))
		fee := grossIncome * terms.AssetMgmtFeePercent / 100
		assetMgmtFees += fee
		analysis.YearlyProjections[i].CashFlow -= fee
		cumulative += analysis.YearlyProjections[i].CashFlow
		analysis.YearlyProjections[i].CumulativeCashFlow = cumulative
	}

	// 3. Exit with the disposition fee off the top.
	analysis.SalePrice = capitalize(exitNOI(op, noi), base.ExitCapRatePercent)
	dispositionFee := analysis.SalePrice * terms.DispositionFeePercent / 100
	balanceAtExit := loanAmount
	if !fin.InterestOnly {
		balanceAtExit = finmath.RemainingBalance(loanAmount, fin.InterestRate, fin.AmortizationYears, base.HoldPeriodYears*finmath.MonthsPerYear)
	}
	analysis.NetSaleProceeds = analysis.SalePrice*(1-base.SellingCostPercent/100) - dispositionFee - balanceAtExit

	// No refinance event is modeled in this structure, so the refinance fee
	// charges nothing; the field exists for completeness of the fee schedule.
	totalFees := originationFee + acquisitionFee + constructionFee + assetMgmtFees + dispositionFee
	analysis.TotalFees = &totalFees

	// 4. Inline waterfall: LP pref first, then the promote split of the
	// remainder. Negative years distribute nothing (no shortfall carry in
	// the inline model).
	annualPref := lpEquity * terms.PreferredReturnPercent / 100
	distribute := func(amount, promotePercent float64) (gp, lp float64) {
		if amount <= 0 {
			return 0, 0
		}
		pref := math.Min(amount, annualPref)
		remaining := amount - pref
		gp = remaining * promotePercent / 100
		lp = pref + remaining*(1-promotePercent/100)
		return gp, lp
	}

	years := len(analysis.YearlyProjections)
	gpDist := make([]float64, years)
	lpDist := make([]float64, years)
	for i := 0; i < years-1; i++ {
		gpDist[i], lpDist[i] = distribute(analysis.YearlyProjections[i].CashFlow, terms.GPPromotePercent)
	}

	if years > 0 {
		finalAmount := analysis.YearlyProjections[years-1].CashFlow + analysis.NetSaleProceeds

		// Exit-only hurdle test: allocate the final year at the base
		// promote, check the LP's would-be IRR, and bump the GP share if
		// the hurdle clears.
		promoteAtExit := terms.GPPromotePercent
		if terms.HurdleIRRPercent > 0 {
			_, trialLP := distribute(finalAmount, terms.GPPromotePercent)
			trialVector := append([]float64{-lpEquity}, lpDist[:years-1]...)
			trialVector = append(trialVector, trialLP)
			if finmath.IRR(trialVector)*100 >= terms.HurdleIRRPercent {
				promoteAtExit = terms.HurdlePromotePercent
			}
		}
		gpDist[years-1], lpDist[years-1] = distribute(finalAmount, promoteAtExit)
	}

	// 5. Party-level metrics.
	analysis.GPSplit = partySplit(gpEquity, gpDist)
	analysis.LPSplit = partySplit(lpEquity, lpDist)

	analysis.IRR, analysis.EquityMultiple = irrAndMultiple(analysis.TotalEquity, analysis.YearlyProjections, analysis.NetSaleProceeds)
	if years > 0 {
		last := analysis.YearlyProjections[years-1]
		analysis.TotalProfit = last.CumulativeCashFlow + analysis.NetSaleProceeds - analysis.TotalEquity
	}

	return analysis
}

func partySplit(equity float64, distributions []float64) *PartySplit {
	split := &PartySplit{Equity: equity}

	vector := make([]float64, 0, len(distributions)+1)
	vector = append(vector, -equity)
	for _, d := range distributions {
		vector = append(vector, d)
		split.TotalDistributions += d
	}

	split.IRR = finmath.IRR(vector) * 100
	if equity != 0 {
		split.EquityMultiple = split.TotalDistributions / equity
	}
	return split
}
