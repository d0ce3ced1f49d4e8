// Package structures implements the capital-stack dispatcher: five
// structure-specific calculators (all-cash, conventional, bridge-to-refi,
// assumable, syndication) that share the finmath primitives but each model
// their own equity, debt and exit timeline, unified behind one DealAnalysis
// shape for side-by-side comparison.
package structures

// StructureType discriminates the StructuredDealInputs union.
type StructureType string

const (
	StructureAllCash      StructureType = "all_cash"
	StructureConventional StructureType = "conventional"
	StructureBridgeRefi   StructureType = "bridge_refi"
	StructureAssumable    StructureType = "assumable"
	StructureSyndication  StructureType = "syndication"
)

// AllStructureTypes returns the five structures in comparison order.
func AllStructureTypes() []StructureType {
	return []StructureType{
		StructureAllCash,
		StructureConventional,
		StructureBridgeRefi,
		StructureAssumable,
		StructureSyndication,
	}
}

// MarketCapRateEstimate is a resolved external valuation figure: a point
// estimate plus its confidence band. The band keys the 3-point exit
// sensitivity (optimistic = low cap, conservative = high cap).
type MarketCapRateEstimate struct {
	Rate     float64 `json:"rate"`      // percent
	LowBand  float64 `json:"low_band"`  // percent
	HighBand float64 `json:"high_band"` // percent
}

// BaseDealTerms are the fields every structure variant shares.
type BaseDealTerms struct {
	PurchasePrice    float64 `json:"purchase_price"`
	ClosingCosts     float64 `json:"closing_costs"`
	RenovationBudget float64 `json:"renovation_budget"`

	GrossAnnualIncome float64 `json:"gross_annual_income"` // potential, at 100% occupancy
	VacancyPercent    float64 `json:"vacancy_percent"`
	OperatingExpenses float64 `json:"operating_expenses"` // annual, year 1

	RentGrowthPercent    float64 `json:"rent_growth_percent"`
	ExpenseGrowthPercent float64 `json:"expense_growth_percent"`

	HoldPeriodYears    int     `json:"hold_period_years"`
	ExitCapRatePercent float64 `json:"exit_cap_rate_percent"`
	SellingCostPercent float64 `json:"selling_cost_percent"`

	// Resolved external figures.
	MarketMortgageRate float64                `json:"market_mortgage_rate"`
	MarketCapRate      *MarketCapRateEstimate `json:"market_cap_rate,omitempty"`
}

// ConventionalTerms is a single market-terms loan.
type ConventionalTerms struct {
	LTVPercent            float64 `json:"ltv_percent"`
	InterestRate          float64 `json:"interest_rate"`
	AmortizationYears     int     `json:"amortization_years"`
	InterestOnly          bool    `json:"interest_only"`
	OriginationFeePercent float64 `json:"origination_fee_percent"`
}

// BridgeRefiTerms model the BRRRR pattern: short-term bridge, instantaneous
// post-rehab stabilization, permanent refinance.
//
// The bridge phase is lumped into the year-0/year-1 transition: points and
// bridge carry fold into initial equity and the refinance lands in year 1
// with the first stabilized cash flow. Monthly bridge draws are not modeled.
type BridgeRefiTerms struct {
	BridgeLTVPercent float64 `json:"bridge_ltv_percent"`
	BridgeRate       float64 `json:"bridge_rate"`
	BridgePoints     float64 `json:"bridge_points"` // percent of bridge loan
	BridgeMonths     int     `json:"bridge_months"`

	RentBumpPercent  float64 `json:"rent_bump_percent"`  // instantaneous post-rehab bump
	AfterRepairValue float64 `json:"after_repair_value"` // 0 = derive from post-rehab NOI / exit cap

	RefiLTVPercent        float64 `json:"refi_ltv_percent"`
	RefiRate              float64 `json:"refi_rate"`
	RefiAmortizationYears int     `json:"refi_amortization_years"`
	RefiFeePercent        float64 `json:"refi_fee_percent"`
}

// AssumableTerms describe inheriting the seller's loan on its original
// schedule, optionally layered with a supplemental loan at market terms.
type AssumableTerms struct {
	OriginalPrincipal         float64 `json:"original_principal"`
	OriginalRate              float64 `json:"original_rate"`
	OriginalAmortizationYears int     `json:"original_amortization_years"`
	MonthsElapsed             int     `json:"months_elapsed"`

	SupplementalAmount            float64 `json:"supplemental_amount"`
	SupplementalRate              float64 `json:"supplemental_rate"`
	SupplementalAmortizationYears int     `json:"supplemental_amortization_years"`
}

// SyndicationTerms add a GP/LP equity split, the five sponsor fees, and the
// inline 2-tier waterfall (preferred return, then a promote split, with an
// exit-only hurdle test). The standalone promote package models the full
// N-tier waterfall; this inline model is deliberately simpler and the two
// are not reconciled.
type SyndicationTerms struct {
	Financing ConventionalTerms `json:"financing"`

	GPEquityPercent float64 `json:"gp_equity_percent"`
	LPEquityPercent float64 `json:"lp_equity_percent"`

	PreferredReturnPercent float64 `json:"preferred_return_percent"`
	GPPromotePercent       float64 `json:"gp_promote_percent"`     // GP share above pref
	HurdleIRRPercent       float64 `json:"hurdle_irr_percent"`     // exit-only trial LP IRR test
	HurdlePromotePercent   float64 `json:"hurdle_promote_percent"` // raised GP share once cleared

	AcquisitionFeePercent      float64 `json:"acquisition_fee_percent"`       // of purchase price
	AssetMgmtFeePercent        float64 `json:"asset_mgmt_fee_percent"`        // of gross income, per year
	DispositionFeePercent      float64 `json:"disposition_fee_percent"`       // of sale price
	RefinanceFeePercent        float64 `json:"refinance_fee_percent"`         // of refi proceeds; no refi event modeled here
	ConstructionMgmtFeePercent float64 `json:"construction_mgmt_fee_percent"` // of renovation budget
}

// StructuredDealInputs is the closed union over the five structures: Type
// selects which variant payload applies. Dispatch is a switch, not
// inheritance — the structures' fields and math are genuinely different.
type StructuredDealInputs struct {
	Type StructureType `json:"type"`
	Base BaseDealTerms `json:"base"`

	Conventional *ConventionalTerms `json:"conventional,omitempty"`
	BridgeRefi   *BridgeRefiTerms   `json:"bridge_refi,omitempty"`
	Assumable    *AssumableTerms    `json:"assumable,omitempty"`
	Syndication  *SyndicationTerms  `json:"syndication,omitempty"`
}

// YearlyProjection is one projected year in a structure's timeline.
type YearlyProjection struct {
	Year                 int     `json:"year"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`
	OperatingExpenses    float64 `json:"operating_expenses"`
	NOI                  float64 `json:"noi"`
	DebtService          float64 `json:"debt_service"`
	CashFlow             float64 `json:"cash_flow"`
	CumulativeCashFlow   float64 `json:"cumulative_cash_flow"`
}

// ExitSensitivity is the structure engine's 3-point band keyed on the market
// cap-rate confidence interval. Distinct from the base engine's 5x5 grid.
type ExitSensitivity struct {
	OptimisticCap   float64 `json:"optimistic_cap"`
	ConservativeCap float64 `json:"conservative_cap"`
	OptimisticIRR   float64 `json:"optimistic_irr"`
	BaseIRR         float64 `json:"base_irr"`
	ConservativeIRR float64 `json:"conservative_irr"`
}

// PartySplit summarizes one side of a syndication.
type PartySplit struct {
	Equity             float64 `json:"equity"`
	TotalDistributions float64 `json:"total_distributions"`
	IRR                float64 `json:"irr"`
	EquityMultiple     float64 `json:"equity_multiple"`
}

// DealAnalysis is the uniform output shape every structure calculator
// returns, so a comparison can tabulate any subset side by side.
type DealAnalysis struct {
	ID        string        `json:"id"`
	Structure StructureType `json:"structure"`

	TotalProjectCost float64 `json:"total_project_cost"`
	TotalDebt        float64 `json:"total_debt"`
	TotalEquity      float64 `json:"total_equity"`

	// Year-1 metrics.
	YearOneNOI float64 `json:"year_one_noi"`
	CapRate    float64 `json:"cap_rate"`
	CashOnCash float64 `json:"cash_on_cash"`
	DSCR       float64 `json:"dscr"`

	// Hold-period metrics.
	SalePrice          float64 `json:"sale_price"`
	NetSaleProceeds    float64 `json:"net_sale_proceeds"`
	TotalProfit        float64 `json:"total_profit"`
	EquityMultiple     float64 `json:"equity_multiple"`
	IRR                float64 `json:"irr"` // percent
	BreakEvenOccupancy float64 `json:"break_even_occupancy"`

	// Structure-specific optionals.
	CashOutOnRefi     *float64    `json:"cash_out_on_refi,omitempty"`
	BlendedRate       *float64    `json:"blended_rate,omitempty"`
	AnnualRateSavings *float64    `json:"annual_rate_savings,omitempty"`
	TotalRateSavings  *float64    `json:"total_rate_savings,omitempty"`
	TotalFees         *float64    `json:"total_fees,omitempty"`
	GPSplit           *PartySplit `json:"gp_split,omitempty"`
	LPSplit           *PartySplit `json:"lp_split,omitempty"`

	YearlyProjections []YearlyProjection `json:"yearly_projections"`
	ExitSensitivity   ExitSensitivity    `json:"exit_sensitivity"`
}
