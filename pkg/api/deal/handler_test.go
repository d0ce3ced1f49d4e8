package deal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	coredeal "deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/promote"
	"deal_underwriter/pkg/core/structures"
)

func testHandler() *Handler {
	return NewHandler(zap.NewNop())
}

func post(t *testing.T, handle http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func sampleDeal() coredeal.DealInputs {
	return coredeal.DealInputs{
		PurchasePrice: 5000000,
		ClosingCosts:  100000,
		Financing: coredeal.FinancingTerms{
			LTVPercent:        65,
			InterestRate:      0.07,
			AmortizationYears: 30,
		},
		UnitMix: []coredeal.UnitMixRow{
			{UnitType: "1BR", Count: 10, MonthlyRent: 2500},
		},
		ResidentialVacancyPercent: 5,
		Expenses: coredeal.OperatingExpenses{
			PropertyTaxes: coredeal.ExpenseRow{Annual: 60000},
		},
		ManagementFeePercent: 4,
		RentGrowthPercent:    3,
		ExpenseGrowthPercent: 2,
		HoldPeriodYears:      5,
		ExitCapRatePercent:   5.5,
		SellingCostPercent:   6,
	}
}

func sampleBase() structures.BaseDealTerms {
	return structures.BaseDealTerms{
		PurchasePrice:      5000000,
		GrossAnnualIncome:  550000,
		VacancyPercent:     5,
		OperatingExpenses:  200000,
		HoldPeriodYears:    5,
		ExitCapRatePercent: 5.5,
		SellingCostPercent: 6,
		MarketMortgageRate: 0.065,
	}
}

func TestHandleAnalyze(t *testing.T) {
	rec := post(t, testHandler().HandleAnalyze, sampleDeal())
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var outputs coredeal.DealOutputs
	if err := json.NewDecoder(rec.Body).Decode(&outputs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(outputs.CashFlows) != 5 {
		t.Errorf("expected 5 projected years, got %d", len(outputs.CashFlows))
	}
	if len(outputs.Sensitivity.IRR) != 5 {
		t.Errorf("expected the 5x5 grid, got %d rows", len(outputs.Sensitivity.IRR))
	}
}

func TestHandleAnalyzeRejectsBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	testHandler().HandleAnalyze(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleAnalyzePreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	testHandler().HandleAnalyze(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight should return 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header")
	}
}

func TestHandleStructure(t *testing.T) {
	inputs := structures.GetDefaultStructureInputs(structures.StructureBridgeRefi, sampleBase())
	rec := post(t, testHandler().HandleStructure, inputs)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var analysis structures.DealAnalysis
	if err := json.NewDecoder(rec.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analysis.Structure != structures.StructureBridgeRefi {
		t.Errorf("wrong structure: %s", analysis.Structure)
	}
	if analysis.CashOutOnRefi == nil {
		t.Errorf("bridge analysis should carry the refi cash-out")
	}
}

func TestHandleCompareDefaultsToAllStructures(t *testing.T) {
	rec := post(t, testHandler().HandleCompare, CompareRequest{Base: sampleBase()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var analyses []structures.DealAnalysis
	if err := json.NewDecoder(rec.Body).Decode(&analyses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(analyses) != 5 {
		t.Errorf("expected all five structures, got %d", len(analyses))
	}
}

func TestHandlePromote(t *testing.T) {
	req := PromoteRequest{
		Deal: sampleDeal(),
		Promote: promote.PromoteInputs{
			GPEquityPercent: 10,
			LPEquityPercent: 90,
			Tiers: []promote.WaterfallTier{
				{Name: "preferred", PreferredReturnPercent: 8},
				{Name: "promote", GPSplitPercent: 30, LPSplitPercent: 70},
			},
		},
	}
	rec := post(t, testHandler().HandlePromote, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var result promote.PromoteOutputs
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Years) != 5 {
		t.Errorf("expected a 5-year ledger, got %d", len(result.Years))
	}
}

func TestHandlePromoteSensitivity(t *testing.T) {
	req := PromoteSensitivityRequest{
		Deal: sampleDeal(),
		Promote: promote.PromoteInputs{
			GPEquityPercent: 10,
			LPEquityPercent: 90,
			Tiers: []promote.WaterfallTier{
				{Name: "promote", GPSplitPercent: 30, LPSplitPercent: 70},
			},
		},
		ExitCapDeltas:    []float64{-0.5, 0, 0.5},
		RentGrowthDeltas: []float64{0},
	}
	rec := post(t, testHandler().HandlePromoteSensitivity, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var grid promote.PromoteSensitivity
	if err := json.NewDecoder(rec.Body).Decode(&grid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(grid.LPIRR) != 3 || len(grid.LPIRR[0]) != 1 {
		t.Errorf("expected a 3x1 grid")
	}
}

func TestHandleReport(t *testing.T) {
	rec := post(t, testHandler().HandleReport, CompareRequest{Base: sampleBase()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Markdown, "# Structure Comparison") {
		t.Errorf("markdown missing title")
	}
	if !strings.Contains(resp.HTML, "<h1>") {
		t.Errorf("html missing heading")
	}
}
