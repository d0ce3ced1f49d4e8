package promote

import (
	"math"

	"deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/finmath"
)

// CalculatePromote runs the tier waterfall over a calculated deal's annual
// cash flows plus exit proceeds. Per year, distributable cash is
// max(0, operating cash flow + exit proceeds in the final year), walked
// through the tiers in order; anything left after the last tier is split
// pro-rata by equity share. Preferred-return shortfalls carry forward; an
// IRR-hurdle tier only activates once the LP's running-to-date IRR clears
// its hurdle.
func CalculatePromote(inputs deal.DealInputs, outputs deal.DealOutputs, promote PromoteInputs) PromoteOutputs {
	result := PromoteOutputs{
		GPEquity: outputs.Debt.TotalEquity * promote.GPEquityPercent / 100,
		LPEquity: outputs.Debt.TotalEquity * promote.LPEquityPercent / 100,
	}

	years := len(outputs.CashFlows)
	result.Years = make([]YearDistribution, 0, years)

	// LP distributions to date, for hurdle tests. Index 0 is the equity
	// contribution.
	lpVector := make([]float64, 0, years+1)
	lpVector = append(lpVector, -result.LPEquity)
	gpVector := make([]float64, 0, years+1)
	gpVector = append(gpVector, -result.GPEquity)

	shortfall := 0.0
	cumulativeGP := 0.0
	cumulativeLP := 0.0

	for i, cf := range outputs.CashFlows {
		distributable := cf.CashFlow
		if i == years-1 {
			distributable += outputs.Exit.ExitProceeds
		}
		distributable = math.Max(0, distributable)

		ledger := YearDistribution{Year: cf.Year, DistributableCash: distributable}
		remaining := distributable

		// The walk runs even when nothing is distributable: a dry year still
		// accrues the preferred return into the rolling shortfall.
		for _, tier := range promote.Tiers {
			if tier.IRRHurdlePercent > 0 && !hurdleCleared(lpVector, ledger.LPTotal, tier.IRRHurdlePercent) {
				continue
			}

			switch {
			case tier.PreferredReturnPercent > 0:
				// 1. Preferred return, with carried shortfall.
				owed := result.LPEquity*tier.PreferredReturnPercent/100 + shortfall
				paid := math.Min(remaining, owed)
				shortfall = owed - paid
				ledger.LPPreferred += paid
				ledger.LPTotal += paid
				remaining -= paid
			case tier.CatchUpPercent > 0:
				// 2. GP catch-up off the remaining cash.
				paid := remaining * tier.CatchUpPercent / 100
				ledger.GPCatchUp += paid
				ledger.GPTotal += paid
				remaining -= paid
			default:
				// 3. Profit split consumes all of remaining.
				gpShare := remaining * tier.GPSplitPercent / 100
				lpShare := remaining * tier.LPSplitPercent / 100
				ledger.GPSplit += gpShare
				ledger.LPSplit += lpShare
				ledger.GPTotal += gpShare
				ledger.LPTotal += lpShare
				remaining -= gpShare + lpShare
			}
		}

		// Cash surviving every tier splits pro-rata by equity.
		if remaining > 0 {
			gpShare := remaining * promote.GPEquityPercent / 100
			lpShare := remaining * promote.LPEquityPercent / 100
			ledger.GPSplit += gpShare
			ledger.LPSplit += lpShare
			ledger.GPTotal += gpShare
			ledger.LPTotal += lpShare
		}

		// Promote = GP's take beyond its pro-rata share of this year's cash.
		ledger.PromoteEarned = ledger.GPTotal - distributable*promote.GPEquityPercent/100
		ledger.PrefShortfall = shortfall

		cumulativeGP += ledger.GPTotal
		cumulativeLP += ledger.LPTotal
		ledger.CumulativeGP = cumulativeGP
		ledger.CumulativeLP = cumulativeLP

		gpVector = append(gpVector, ledger.GPTotal)
		lpVector = append(lpVector, ledger.LPTotal)
		result.Years = append(result.Years, ledger)

		result.TotalGPDistributions += ledger.GPTotal
		result.TotalLPDistributions += ledger.LPTotal
		result.TotalPromoteEarned += ledger.PromoteEarned
	}

	// Lifetime figures: each party's contribution-then-distribution vector
	// through the shared root finder.
	result.GPIRR = finmath.IRR(gpVector) * 100
	result.LPIRR = finmath.IRR(lpVector) * 100
	if result.GPEquity != 0 {
		result.GPEquityMultiple = result.TotalGPDistributions / result.GPEquity
	}
	if result.LPEquity != 0 {
		result.LPEquityMultiple = result.TotalLPDistributions / result.LPEquity
	}

	return result
}

// hurdleCleared tests the LP's running-to-date IRR: everything the LP has
// received in prior years plus this year's pending allocation.
func hurdleCleared(lpVector []float64, pendingThisYear, hurdlePercent float64) bool {
	trial := make([]float64, len(lpVector), len(lpVector)+1)
	copy(trial, lpVector)
	trial = append(trial, pendingThisYear)
	return finmath.IRR(trial)*100 >= hurdlePercent
}
