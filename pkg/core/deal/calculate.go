package deal

// Calculate runs the pipeline without the sensitivity grid. The grid's
// cells call back into this (as does the promote engine's own grid), so it
// has to stay grid-free.
func Calculate(inputs DealInputs) DealOutputs {
	income, expenses, noi := CalculateIncomeExpenses(inputs)
	debt := CalculateDebt(inputs)
	cashFlows := ProjectCashFlows(inputs, income, expenses, debt)
	returns, exit := CalculateReturns(inputs, noi, debt, cashFlows)

	return DealOutputs{
		Income:         income,
		ExpenseDetail:  expenses,
		NOI:            noi,
		Debt:           debt,
		Returns:        returns,
		CashFlows:      cashFlows,
		Exit:           exit,
		SourcesAndUses: BuildSourcesAndUses(inputs, debt),
	}
}

// CalculateAll is the base pipeline entry point: income/expense breakdown,
// loan sizing, hold-period projection, return metrics, exit economics,
// sources and uses, and the 5x5 sensitivity grid. Pure function — identical
// inputs produce identical outputs.
func CalculateAll(inputs DealInputs) DealOutputs {
	outputs := Calculate(inputs)
	outputs.Sensitivity = AnalyzeSensitivity(inputs)
	return outputs
}
