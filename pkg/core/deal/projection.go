package deal

import "math"

// ProjectCashFlows compounds the baseline forward over the hold period.
//
// Rent-driving lines (gross rent, vacancy, other income) grow by the rent
// rate; non-management expenses grow by the expense rate; the management fee
// is re-derived from each year's effective gross income. Debt service is held
// constant for the hold — no rate resets or recasting mid-hold.
func ProjectCashFlows(inputs DealInputs, income IncomeBreakdown, expenses ExpenseBreakdown, debt DebtFigures) []CashFlowYear {
	years := make([]CashFlowYear, 0, inputs.HoldPeriodYears)

	baseGrossRent := income.GrossPotentialRent + income.CommercialIncome
	baseVacancy := income.ResidentialVacancyLoss + income.CommercialVacancyLoss + income.Concessions
	baseOther := income.TotalOtherIncome
	baseFixed := expenses.FixedExpenses + expenses.CustomExpenses

	cumulative := 0.0
	for year := 1; year <= inputs.HoldPeriodYears; year++ {
		rentFactor := math.Pow(1.0+inputs.RentGrowthPercent/100, float64(year))
		expenseFactor := math.Pow(1.0+inputs.ExpenseGrowthPercent/100, float64(year))

		cf := CashFlowYear{Year: year}
		cf.GrossRent = baseGrossRent * rentFactor
		cf.VacancyLoss = baseVacancy * rentFactor
		cf.OtherIncome = baseOther * rentFactor
		cf.EffectiveGrossIncome = cf.GrossRent - cf.VacancyLoss + cf.OtherIncome

		managementFee := cf.EffectiveGrossIncome * inputs.ManagementFeePercent / 100
		cf.Expenses = baseFixed*expenseFactor + managementFee

		cf.NOI = cf.EffectiveGrossIncome - cf.Expenses
		cf.DebtService = debt.ActiveAnnualDebtService
		cf.CashFlow = cf.NOI - cf.DebtService

		cumulative += cf.CashFlow
		cf.CumulativeCashFlow = cumulative

		years = append(years, cf)
	}

	return years
}
