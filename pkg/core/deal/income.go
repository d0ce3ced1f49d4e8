package deal

// CalculateIncomeExpenses produces the in-place income and expense breakdown
// and NOI from the flat assumption set.
//
// Management fee is a percent of the current period's total income, computed
// fresh here and again each projected year — never grown from a stale
// baseline, which would compound drift into the fee.
func CalculateIncomeExpenses(inputs DealInputs) (IncomeBreakdown, ExpenseBreakdown, float64) {
	income := IncomeBreakdown{}

	// 1. Residential: gross potential rent off the unit mix.
	for _, row := range inputs.UnitMix {
		income.GrossPotentialRent += float64(row.Count) * row.MonthlyRent * 12
	}
	income.ResidentialVacancyLoss = income.GrossPotentialRent * inputs.ResidentialVacancyPercent / 100
	income.Concessions = inputs.Concessions
	income.NetResidentialIncome = income.GrossPotentialRent - income.ResidentialVacancyLoss - income.Concessions

	// 2. Commercial: itemized tenant schedule wins over the flat figure.
	if len(inputs.CommercialTenants) > 0 {
		for _, tenant := range inputs.CommercialTenants {
			income.CommercialIncome += tenant.AnnualRent
		}
	} else {
		income.CommercialIncome = inputs.CommercialIncome
	}
	income.CommercialVacancyLoss = income.CommercialIncome * inputs.CommercialVacancyPercent / 100
	income.NetCommercialIncome = income.CommercialIncome - income.CommercialVacancyLoss

	income.NetRentableIncome = income.NetResidentialIncome + income.NetCommercialIncome

	// 3. Other income: fixed lines plus custom items.
	oi := inputs.OtherIncome
	income.TotalOtherIncome = oi.LateFees + oi.Parking + oi.Storage + oi.PetDeposits +
		oi.PetRent + oi.EVCharging + oi.TrashRUBS + oi.WaterRUBS +
		oi.CAMRecoveries + oi.Miscellaneous
	for _, item := range inputs.CustomIncomeItems {
		income.TotalOtherIncome += item.Annual
	}

	income.TotalIncome = income.NetRentableIncome + income.TotalOtherIncome

	// 4. Expenses: fixed categories, custom items, then the management fee
	// on total income.
	expenses := ExpenseBreakdown{}
	for _, row := range inputs.Expenses.fixedExpenseRows() {
		expenses.FixedExpenses += row.Annual
	}
	for _, item := range inputs.CustomExpenseItems {
		expenses.CustomExpenses += item.Annual
	}
	expenses.ManagementFee = income.TotalIncome * inputs.ManagementFeePercent / 100
	expenses.TotalExpenses = expenses.FixedExpenses + expenses.CustomExpenses + expenses.ManagementFee

	noi := income.TotalIncome - expenses.TotalExpenses
	return income, expenses, noi
}
