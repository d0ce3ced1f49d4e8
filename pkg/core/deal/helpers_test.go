package deal

import (
	"math"
	"testing"
)

// sampleInputs is the 20-unit reference deal used across the package tests:
// $5M purchase, 65% LTV at 7% over 30 years, 5% vacancy, 5-year hold at a
// 5.5% exit cap.
func sampleInputs() DealInputs {
	return DealInputs{
		PurchasePrice:    5000000,
		ClosingCosts:     100000,
		RenovationBudget: 250000,
		Financing: FinancingTerms{
			LTVPercent:            65,
			InterestRate:          0.07,
			AmortizationYears:     30,
			LoanTermYears:         30,
			InterestOnly:          false,
			OriginationFeePercent: 1,
		},
		UnitMix: []UnitMixRow{
			{UnitType: "Studio", Count: 4, MonthlyRent: 2000},
			{UnitType: "1BR", Count: 8, MonthlyRent: 2500},
			{UnitType: "2BR", Count: 4, MonthlyRent: 3200},
		},
		ResidentialVacancyPercent: 5,
		Concessions:               10000,
		OtherIncome: OtherIncomeItems{
			LateFees: 6000,
			Parking:  24000,
			Storage:  4800,
		},
		Expenses: OperatingExpenses{
			PropertyTaxes: ExpenseRow{Annual: 65000, Source: SourceManual},
			Insurance:     ExpenseRow{Annual: 30000, Source: SourceEstimate},
			WaterSewer:    ExpenseRow{Annual: 18000, Source: SourceTrailing},
			RepairsMaint:  ExpenseRow{Annual: 25000, Source: SourceBenchmark, Methodology: "$1,250/unit"},
			Payroll:       ExpenseRow{Annual: 40000},
		},
		ManagementFeePercent: 4,
		RentGrowthPercent:    3,
		ExpenseGrowthPercent: 2,
		HoldPeriodYears:      5,
		ExitCapRatePercent:   5.5,
		SellingCostPercent:   6,
	}
}

func assertClose(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s: expected %f, got %f", name, want, got)
	}
}
