package deal

import "deal_underwriter/pkg/core/finmath"

// CalculateDebt sizes the loan/equity split and computes both payment
// variants. Equity absorbs every transaction cost and fee — the loan never
// does. The interest-only flag only selects which payment is active; both
// are always available so downstream comparisons can show the spread.
func CalculateDebt(inputs DealInputs) DebtFigures {
	debt := DebtFigures{}

	debt.LoanAmount = inputs.PurchasePrice * inputs.Financing.LTVPercent / 100
	debt.OriginationFee = debt.LoanAmount * inputs.Financing.OriginationFeePercent / 100
	debt.TotalEquity = inputs.PurchasePrice - debt.LoanAmount +
		inputs.ClosingCosts + inputs.RenovationBudget + debt.OriginationFee

	debt.MonthlyPaymentIO = finmath.InterestOnlyPayment(debt.LoanAmount, inputs.Financing.InterestRate)
	debt.MonthlyPaymentAmortized = finmath.MonthlyPayment(debt.LoanAmount, inputs.Financing.InterestRate, inputs.Financing.AmortizationYears)
	debt.AnnualDebtServiceIO = debt.MonthlyPaymentIO * finmath.MonthsPerYear
	debt.AnnualDebtServiceAmort = debt.MonthlyPaymentAmortized * finmath.MonthsPerYear

	if inputs.Financing.InterestOnly {
		debt.ActiveAnnualDebtService = debt.AnnualDebtServiceIO
	} else {
		debt.ActiveAnnualDebtService = debt.AnnualDebtServiceAmort
	}

	return debt
}

// BuildSourcesAndUses assembles the closing table from the sized debt.
func BuildSourcesAndUses(inputs DealInputs, debt DebtFigures) SourcesAndUses {
	return SourcesAndUses{
		LoanAmount:       debt.LoanAmount,
		EquityRequired:   debt.TotalEquity,
		TotalSources:     debt.LoanAmount + debt.TotalEquity,
		PurchasePrice:    inputs.PurchasePrice,
		ClosingCosts:     inputs.ClosingCosts,
		RenovationBudget: inputs.RenovationBudget,
		OriginationFee:   debt.OriginationFee,
		TotalUses:        inputs.PurchasePrice + inputs.ClosingCosts + inputs.RenovationBudget + debt.OriginationFee,
	}
}
