package promote

import (
	"math"
	"reflect"
	"testing"

	"deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/finmath"
)

func assertClose(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s: expected %f, got %f", name, want, got)
	}
}

// synthOutputs builds a minimal calculated deal for waterfall tests: just the
// equity, the annual cash flows and the exit proceeds the engine reads.
func synthOutputs(totalEquity float64, cashFlows []float64, exitProceeds float64) deal.DealOutputs {
	outputs := deal.DealOutputs{}
	outputs.Debt.TotalEquity = totalEquity
	outputs.Exit.ExitProceeds = exitProceeds
	for i, cf := range cashFlows {
		outputs.CashFlows = append(outputs.CashFlows, deal.CashFlowYear{Year: i + 1, CashFlow: cf})
	}
	return outputs
}

// prefOverPromote is the standard 8-over-30/70 stack used across the tests.
func prefOverPromote() PromoteInputs {
	return PromoteInputs{
		GPEquityPercent: 10,
		LPEquityPercent: 90,
		Tiers: []WaterfallTier{
			{Name: "preferred", PreferredReturnPercent: 8},
			{Name: "promote", GPSplitPercent: 30, LPSplitPercent: 70},
		},
	}
}

// LP equity 900,000 at an 8% pref gives a 72,000 annual pref. A 100,000 year
// pays the pref in full and splits the remaining 28,000 at 30/70.
func TestPreferredThenSplit(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{100000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	assertClose(t, "lp equity", result.LPEquity, 900000, 0.01)

	year := result.Years[0]
	assertClose(t, "lp preferred", year.LPPreferred, 72000, 0.01)
	assertClose(t, "gp total", year.GPTotal, 8400, 0.01)
	assertClose(t, "lp total", year.LPTotal, 91600, 0.01)
	assertClose(t, "shortfall", year.PrefShortfall, 0, 0.01)

	// GP's pro-rata share of the 100,000 would have been 10,000; paying the
	// pref first leaves the GP short of pro-rata this year.
	assertClose(t, "promote earned", year.PromoteEarned, -1600, 0.01)
}

func TestPrefShortfallCarriesForward(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{50000, 200000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	// Year 1 cannot cover the 72,000 pref: all cash goes to the LP and the
	// unpaid 22,000 rolls forward.
	year1 := result.Years[0]
	assertClose(t, "year 1 lp preferred", year1.LPPreferred, 50000, 0.01)
	assertClose(t, "year 1 gp total", year1.GPTotal, 0, 0.01)
	assertClose(t, "year 1 shortfall", year1.PrefShortfall, 22000, 0.01)

	// Year 2 pays the accrued 94,000 first, then splits the 106,000 left.
	year2 := result.Years[1]
	assertClose(t, "year 2 lp preferred", year2.LPPreferred, 94000, 0.01)
	assertClose(t, "year 2 shortfall", year2.PrefShortfall, 0, 0.01)
	assertClose(t, "year 2 gp total", year2.GPTotal, 31800, 0.01)
	assertClose(t, "year 2 lp total", year2.LPTotal, 168200, 0.01)
}

func TestWaterfallConservation(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{50000, -20000, 130000, 90000}, 650000)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	for _, year := range result.Years {
		assertClose(t, "conservation", year.GPTotal+year.LPTotal, year.DistributableCash, 1e-6)
	}
	// The exit year clears every accrued pref dollar.
	assertClose(t, "final shortfall", result.Years[len(result.Years)-1].PrefShortfall, 0, 0.01)
}

func TestNegativeYearDistributesNothing(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{-50000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	year := result.Years[0]
	assertClose(t, "distributable", year.DistributableCash, 0, 0.01)
	assertClose(t, "gp total", year.GPTotal, 0, 0.01)
	assertClose(t, "lp total", year.LPTotal, 0, 0.01)
	// The pref still accrues against the dry year.
	assertClose(t, "shortfall", year.PrefShortfall, 72000, 0.01)
}

func TestDryYearPrefAccruesAndPaysNextYear(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{-50000, 300000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	// Year 1 distributes nothing but still accrues the full 72,000 pref.
	year1 := result.Years[0]
	assertClose(t, "year 1 lp total", year1.LPTotal, 0, 0.01)
	assertClose(t, "year 1 shortfall", year1.PrefShortfall, 72000, 0.01)

	// Year 2 owes two years of pref (144,000) before the 156,000 left splits.
	year2 := result.Years[1]
	assertClose(t, "year 2 lp preferred", year2.LPPreferred, 144000, 0.01)
	assertClose(t, "year 2 shortfall", year2.PrefShortfall, 0, 0.01)
	assertClose(t, "year 2 gp total", year2.GPTotal, 46800, 0.01)
	assertClose(t, "year 2 lp total", year2.LPTotal, 253200, 0.01)
}

func TestCatchUpTier(t *testing.T) {
	inputs := PromoteInputs{
		GPEquityPercent: 10,
		LPEquityPercent: 90,
		Tiers: []WaterfallTier{
			{Name: "preferred", PreferredReturnPercent: 8},
			{Name: "catch-up", CatchUpPercent: 50},
			{Name: "promote", GPSplitPercent: 30, LPSplitPercent: 70},
		},
	}
	outputs := synthOutputs(1000000, []float64{100000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, inputs)

	// 72,000 pref, then the GP catches up on half the remaining 28,000, then
	// the final 14,000 splits 30/70.
	year := result.Years[0]
	assertClose(t, "gp catch-up", year.GPCatchUp, 14000, 0.01)
	assertClose(t, "gp total", year.GPTotal, 18200, 0.01)
	assertClose(t, "lp total", year.LPTotal, 81800, 0.01)
}

func TestHurdleGatesTier(t *testing.T) {
	inputs := PromoteInputs{
		GPEquityPercent: 10,
		LPEquityPercent: 90,
		Tiers: []WaterfallTier{
			{Name: "preferred", PreferredReturnPercent: 8},
			{Name: "super promote", GPSplitPercent: 90, LPSplitPercent: 10, IRRHurdlePercent: 99},
		},
	}
	outputs := synthOutputs(1000000, []float64{100000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, inputs)

	// The 99% hurdle never clears, so the gated tier is skipped and the
	// 28,000 above the pref falls through to the pro-rata residual split.
	year := result.Years[0]
	assertClose(t, "gp total", year.GPTotal, 2800, 0.01)
	assertClose(t, "lp total", year.LPTotal, 97200, 0.01)
}

func TestHurdleClearsOnRunningIRR(t *testing.T) {
	inputs := PromoteInputs{
		GPEquityPercent: 10,
		LPEquityPercent: 90,
		Tiers: []WaterfallTier{
			{Name: "preferred", PreferredReturnPercent: 8},
			{Name: "hurdle promote", GPSplitPercent: 50, LPSplitPercent: 50, IRRHurdlePercent: 10},
		},
	}
	// Year 1 returns well over the LP's money; by year 2 the running IRR
	// clears 10% and the gated tier activates.
	outputs := synthOutputs(1000000, []float64{1500000, 100000}, 0)
	result := CalculatePromote(deal.DealInputs{}, outputs, inputs)

	year1 := result.Years[0]
	if year1.GPSplit >= year1.DistributableCash*0.5 {
		t.Errorf("year 1 hurdle should not have cleared; gp split %f", year1.GPSplit)
	}

	year2 := result.Years[1]
	assertClose(t, "year 2 gp total", year2.GPTotal, 14000, 0.01)
}

func TestLifetimePartyMetrics(t *testing.T) {
	outputs := synthOutputs(1000000, []float64{100000, 100000, 100000}, 1200000)
	result := CalculatePromote(deal.DealInputs{}, outputs, prefOverPromote())

	assertClose(t, "lp multiple",
		result.LPEquityMultiple, result.TotalLPDistributions/900000, 1e-9)
	assertClose(t, "gp multiple",
		result.GPEquityMultiple, result.TotalGPDistributions/100000, 1e-9)

	// Each party's IRR zeroes its own contribution-then-distribution vector.
	lpVector := []float64{-900000}
	for _, year := range result.Years {
		lpVector = append(lpVector, year.LPTotal)
	}
	assertClose(t, "lp irr definition", finmath.NPV(result.LPIRR/100, lpVector), 0, 1e-4)
}

// sampleDeal is a compact real deal for end-to-end waterfall runs.
func sampleDeal() deal.DealInputs {
	return deal.DealInputs{
		PurchasePrice:    5000000,
		ClosingCosts:     100000,
		RenovationBudget: 250000,
		Financing: deal.FinancingTerms{
			LTVPercent:            65,
			InterestRate:          0.07,
			AmortizationYears:     30,
			OriginationFeePercent: 1,
		},
		UnitMix: []deal.UnitMixRow{
			{UnitType: "Studio", Count: 4, MonthlyRent: 2000},
			{UnitType: "1BR", Count: 8, MonthlyRent: 2500},
			{UnitType: "2BR", Count: 4, MonthlyRent: 3200},
		},
		ResidentialVacancyPercent: 5,
		Expenses: deal.OperatingExpenses{
			PropertyTaxes: deal.ExpenseRow{Annual: 60000},
			Insurance:     deal.ExpenseRow{Annual: 25000},
			RepairsMaint:  deal.ExpenseRow{Annual: 40000},
		},
		ManagementFeePercent: 4,
		RentGrowthPercent:    3,
		ExpenseGrowthPercent: 2,
		HoldPeriodYears:      5,
		ExitCapRatePercent:   5.5,
		SellingCostPercent:   6,
	}
}

func TestPromoteOnCalculatedDeal(t *testing.T) {
	inputs := sampleDeal()
	outputs := deal.Calculate(inputs)
	result := CalculatePromote(inputs, outputs, prefOverPromote())

	if len(result.Years) != inputs.HoldPeriodYears {
		t.Fatalf("expected %d ledger years, got %d", inputs.HoldPeriodYears, len(result.Years))
	}
	assertClose(t, "equity split",
		result.GPEquity+result.LPEquity, outputs.Debt.TotalEquity, 0.01)
	for _, year := range result.Years {
		assertClose(t, "conservation", year.GPTotal+year.LPTotal, year.DistributableCash, 1e-6)
	}
	if result.LPIRR <= 0 {
		t.Errorf("profitable deal should return a positive LP IRR, got %f", result.LPIRR)
	}
}

func TestPromoteDeterminism(t *testing.T) {
	inputs := sampleDeal()
	outputs := deal.Calculate(inputs)

	a := CalculatePromote(inputs, outputs, prefOverPromote())
	b := CalculatePromote(inputs, outputs, prefOverPromote())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs must produce identical outputs")
	}
}

func TestPromoteSensitivityGrid(t *testing.T) {
	inputs := sampleDeal()
	promote := prefOverPromote()
	grid := CalculatePromoteSensitivity(inputs, promote, nil, nil)

	if len(grid.GPIRR) != 5 || len(grid.LPIRR) != 5 {
		t.Fatalf("expected 5 rows, got %d/%d", len(grid.GPIRR), len(grid.LPIRR))
	}
	for i := range grid.GPIRR {
		if len(grid.GPIRR[i]) != 5 || len(grid.LPIRR[i]) != 5 {
			t.Fatalf("row %d: expected 5 columns", i)
		}
	}

	// The center cell is the unperturbed deal.
	base := CalculatePromote(inputs, deal.Calculate(inputs), promote)
	assertClose(t, "center gp cell", grid.GPIRR[2][2], math.Round(base.GPIRR*10)/10, 1e-9)
	assertClose(t, "center lp cell", grid.LPIRR[2][2], math.Round(base.LPIRR*10)/10, 1e-9)

	// Lower exit caps mean richer exits for both parties.
	for j := 0; j < 5; j++ {
		if grid.LPIRR[0][j] < grid.LPIRR[4][j] {
			t.Errorf("column %d: LP IRR should not improve as the exit cap rises", j)
		}
	}
}

func TestPromoteSensitivityCustomDeltas(t *testing.T) {
	grid := CalculatePromoteSensitivity(sampleDeal(), prefOverPromote(),
		[]float64{-0.25, 0, 0.25}, []float64{0})

	if len(grid.GPIRR) != 3 || len(grid.GPIRR[0]) != 1 {
		t.Fatalf("expected a 3x1 grid, got %dx%d", len(grid.GPIRR), len(grid.GPIRR[0]))
	}
}
