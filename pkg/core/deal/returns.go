package deal

import "deal_underwriter/pkg/core/finmath"

// CalculateReturns derives the year-1 and hold-period return metrics plus the
// exit economics. Zero-denominator cases (all-cash, zero price, zero equity)
// substitute 0 rather than producing NaN.
func CalculateReturns(inputs DealInputs, noi float64, debt DebtFigures, cashFlows []CashFlowYear) (ReturnMetrics, ExitFigures) {
	metrics := ReturnMetrics{}
	exit := ExitFigures{}

	// 1. Year-1 metrics.
	if inputs.PurchasePrice != 0 {
		metrics.CapRate = noi / inputs.PurchasePrice * 100
	}
	if debt.TotalEquity != 0 {
		metrics.CashOnCashIO = (noi - debt.AnnualDebtServiceIO) / debt.TotalEquity * 100
		metrics.CashOnCash = (noi - debt.AnnualDebtServiceAmort) / debt.TotalEquity * 100
	}
	if debt.AnnualDebtServiceAmort != 0 {
		metrics.DSCR = noi / debt.AnnualDebtServiceAmort
	}
	if debt.LoanAmount != 0 {
		metrics.DebtYield = noi / debt.LoanAmount * 100
	}

	// 2. Exit: capitalize the final projected (already-grown) NOI.
	exit.ExitNOI = noi
	if len(cashFlows) > 0 {
		exit.ExitNOI = cashFlows[len(cashFlows)-1].NOI
	}
	if inputs.ExitCapRatePercent != 0 {
		exit.ExitValue = exit.ExitNOI / (inputs.ExitCapRatePercent / 100)
	}
	exit.SellingCosts = exit.ExitValue * inputs.SellingCostPercent / 100

	if inputs.Financing.InterestOnly {
		// No principal paydown on an IO loan.
		exit.LoanBalanceAtExit = debt.LoanAmount
	} else {
		exit.LoanBalanceAtExit = finmath.RemainingBalance(
			debt.LoanAmount,
			inputs.Financing.InterestRate,
			inputs.Financing.AmortizationYears,
			inputs.HoldPeriodYears*finmath.MonthsPerYear,
		)
	}
	exit.ExitProceeds = exit.ExitValue - exit.SellingCosts - exit.LoanBalanceAtExit

	// 3. IRR: equity out at t=0, operating cash flows, exit lumped into the
	// final year.
	distributions := make([]float64, 0, len(cashFlows))
	for i, cf := range cashFlows {
		amount := cf.CashFlow
		if i == len(cashFlows)-1 {
			amount += exit.ExitProceeds
		}
		distributions = append(distributions, amount)
	}

	irrVector := append([]float64{-debt.TotalEquity}, distributions...)
	metrics.IRR = finmath.IRR(irrVector) * 100

	// 4. Equity multiple: only positive distributions count.
	totalDistributed := 0.0
	for _, d := range distributions {
		if d > 0 {
			totalDistributed += d
		}
	}
	if debt.TotalEquity != 0 {
		metrics.EquityMultiple = totalDistributed / debt.TotalEquity
	}

	return metrics, exit
}
