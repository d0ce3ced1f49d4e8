// Package deal implements the base underwriting pipeline: income/expense
// modeling, loan sizing, multi-year cash-flow projection, return metrics and
// the exit-cap/price sensitivity grid. Every entry point is a pure function
// of its inputs; nothing here performs I/O or holds state between calls.
package deal

// =============================================================================
// INPUT STRUCTURES
// =============================================================================

// SourceTag records where an assumption came from. Display-only: the
// arithmetic never branches on it.
type SourceTag string

const (
	SourceEstimate  SourceTag = "estimate"
	SourceTrailing  SourceTag = "t12"
	SourceManual    SourceTag = "manual"
	SourceBenchmark SourceTag = "benchmark"
)

// UnitMixRow is one line of the residential rent roll.
type UnitMixRow struct {
	UnitType    string  `json:"unit_type"` // e.g. "Studio", "1BR"
	Count       int     `json:"count"`
	MonthlyRent float64 `json:"monthly_rent"`
}

// CommercialTenant is one line of an itemized commercial schedule. When any
// tenants are supplied they replace the flat CommercialIncome figure.
type CommercialTenant struct {
	Name       string  `json:"name"`
	AnnualRent float64 `json:"annual_rent"`
}

// LineItem is an arbitrary custom income or expense row.
type LineItem struct {
	Name        string    `json:"name"`
	Annual      float64   `json:"annual"`
	Source      SourceTag `json:"source,omitempty"`
	Methodology string    `json:"methodology,omitempty"`
}

// ExpenseRow is one fixed expense category. PerUnit, Source and Methodology
// annotate the row for audit display; only Annual enters the math.
type ExpenseRow struct {
	Annual      float64   `json:"annual"`
	PerUnit     float64   `json:"per_unit,omitempty"`
	Source      SourceTag `json:"source,omitempty"`
	Methodology string    `json:"methodology,omitempty"`
}

// FinancingTerms sizes the acquisition loan.
type FinancingTerms struct {
	LTVPercent            float64 `json:"ltv_percent"` // e.g. 65 for 65%
	InterestRate          float64 `json:"interest_rate"`
	AmortizationYears     int     `json:"amortization_years"`
	LoanTermYears         int     `json:"loan_term_years"`
	InterestOnly          bool    `json:"interest_only"`
	OriginationFeePercent float64 `json:"origination_fee_percent"`
}

// OtherIncomeItems are the fixed ancillary income lines.
type OtherIncomeItems struct {
	LateFees      float64 `json:"late_fees"`
	Parking       float64 `json:"parking"`
	Storage       float64 `json:"storage"`
	PetDeposits   float64 `json:"pet_deposits"`
	PetRent       float64 `json:"pet_rent"`
	EVCharging    float64 `json:"ev_charging"`
	TrashRUBS     float64 `json:"trash_rubs"`
	WaterRUBS     float64 `json:"water_rubs"`
	CAMRecoveries float64 `json:"cam_recoveries"`
	Miscellaneous float64 `json:"miscellaneous"`
}

// OperatingExpenses are the fixed expense categories. Management fee is not a
// row here: it is always recomputed as ManagementFeePercent of the current
// period's total income.
type OperatingExpenses struct {
	PropertyTaxes       ExpenseRow `json:"property_taxes"`
	Insurance           ExpenseRow `json:"insurance"`
	Licenses            ExpenseRow `json:"licenses"`
	FireSafety          ExpenseRow `json:"fire_safety"`
	Electricity         ExpenseRow `json:"electricity"`
	Gas                 ExpenseRow `json:"gas"`
	WaterSewer          ExpenseRow `json:"water_sewer"`
	Trash               ExpenseRow `json:"trash"`
	Payroll             ExpenseRow `json:"payroll"`
	OnsiteManager       ExpenseRow `json:"onsite_manager"`
	LegalFees           ExpenseRow `json:"legal_fees"`
	AccountingFees      ExpenseRow `json:"accounting_fees"`
	Marketing           ExpenseRow `json:"marketing"`
	RepairsMaint        ExpenseRow `json:"repairs_maintenance"`
	Turnover            ExpenseRow `json:"turnover"`
	Landscaping         ExpenseRow `json:"landscaping"`
	SnowRemoval         ExpenseRow `json:"snow_removal"`
	PestControl         ExpenseRow `json:"pest_control"`
	Elevator            ExpenseRow `json:"elevator"`
	Security            ExpenseRow `json:"security"`
	Supplies            ExpenseRow `json:"supplies"`
	AdminOther          ExpenseRow `json:"admin_other"`
	ReplacementReserves ExpenseRow `json:"replacement_reserves"`
}

// DealInputs is the full assumption set for one underwriting run. Immutable
// per calculation; the engine never mutates it mid-run.
type DealInputs struct {
	// Acquisition
	PurchasePrice    float64 `json:"purchase_price"`
	ClosingCosts     float64 `json:"closing_costs"` // resolved externally (e.g. NYC line-item calculator)
	RenovationBudget float64 `json:"renovation_budget"`

	Financing FinancingTerms `json:"financing"`

	// Income
	UnitMix                   []UnitMixRow       `json:"unit_mix"`
	ResidentialVacancyPercent float64            `json:"residential_vacancy_percent"`
	Concessions               float64            `json:"concessions"` // flat annual
	CommercialIncome          float64            `json:"commercial_income"`
	CommercialTenants         []CommercialTenant `json:"commercial_tenants,omitempty"`
	CommercialVacancyPercent  float64            `json:"commercial_vacancy_percent"`
	OtherIncome               OtherIncomeItems   `json:"other_income"`
	CustomIncomeItems         []LineItem         `json:"custom_income_items,omitempty"`

	// Expenses
	Expenses             OperatingExpenses `json:"expenses"`
	ManagementFeePercent float64           `json:"management_fee_percent"`
	CustomExpenseItems   []LineItem        `json:"custom_expense_items,omitempty"`

	// Growth
	RentGrowthPercent    float64 `json:"rent_growth_percent"`
	ExpenseGrowthPercent float64 `json:"expense_growth_percent"`

	// Exit
	HoldPeriodYears    int     `json:"hold_period_years"`
	ExitCapRatePercent float64 `json:"exit_cap_rate_percent"`
	SellingCostPercent float64 `json:"selling_cost_percent"`

	// Resolved external-collaborator figures (never computed here).
	TaxAfterReassessment float64 `json:"tax_after_reassessment,omitempty"`
	MarketMortgageRate   float64 `json:"market_mortgage_rate,omitempty"`
}

// =============================================================================
// OUTPUT STRUCTURES
// =============================================================================

// IncomeBreakdown itemizes the income side of year 1 in place.
type IncomeBreakdown struct {
	GrossPotentialRent     float64 `json:"gross_potential_rent"`
	ResidentialVacancyLoss float64 `json:"residential_vacancy_loss"`
	Concessions            float64 `json:"concessions"`
	NetResidentialIncome   float64 `json:"net_residential_income"`
	CommercialIncome       float64 `json:"commercial_income"`
	CommercialVacancyLoss  float64 `json:"commercial_vacancy_loss"`
	NetCommercialIncome    float64 `json:"net_commercial_income"`
	NetRentableIncome      float64 `json:"net_rentable_income"`
	TotalOtherIncome       float64 `json:"total_other_income"`
	TotalIncome            float64 `json:"total_income"`
}

// ExpenseBreakdown itemizes the expense side.
type ExpenseBreakdown struct {
	FixedExpenses  float64 `json:"fixed_expenses"` // all fixed categories, pre-management
	CustomExpenses float64 `json:"custom_expenses"`
	ManagementFee  float64 `json:"management_fee"`
	TotalExpenses  float64 `json:"total_expenses"`
}

// DebtFigures holds the sized capital stack. Both payment variants are
// always computed; InterestOnly only selects which one is active.
type DebtFigures struct {
	LoanAmount              float64 `json:"loan_amount"`
	OriginationFee          float64 `json:"origination_fee"`
	TotalEquity             float64 `json:"total_equity"`
	MonthlyPaymentIO        float64 `json:"monthly_payment_io"`
	MonthlyPaymentAmortized float64 `json:"monthly_payment_amortized"`
	AnnualDebtServiceIO     float64 `json:"annual_debt_service_io"`
	AnnualDebtServiceAmort  float64 `json:"annual_debt_service_amortized"`
	ActiveAnnualDebtService float64 `json:"active_annual_debt_service"`
}

// CashFlowYear is one projected year. Purely derived, never edited.
type CashFlowYear struct {
	Year                 int     `json:"year"`
	GrossRent            float64 `json:"gross_rent"`
	VacancyLoss          float64 `json:"vacancy_loss"`
	OtherIncome          float64 `json:"other_income"`
	EffectiveGrossIncome float64 `json:"effective_gross_income"`
	Expenses             float64 `json:"expenses"`
	NOI                  float64 `json:"noi"`
	DebtService          float64 `json:"debt_service"`
	CashFlow             float64 `json:"cash_flow"`
	CumulativeCashFlow   float64 `json:"cumulative_cash_flow"`
}

// ReturnMetrics are the year-1 and hold-period return figures.
type ReturnMetrics struct {
	CapRate        float64 `json:"cap_rate"`          // percent
	CashOnCashIO   float64 `json:"cash_on_cash_io"`   // percent
	CashOnCash     float64 `json:"cash_on_cash"`      // amortizing variant, the reported default
	DSCR           float64 `json:"dscr"`
	DebtYield      float64 `json:"debt_yield"`        // percent
	IRR            float64 `json:"irr"`               // percent
	EquityMultiple float64 `json:"equity_multiple"`
}

// ExitFigures describe the modeled sale.
type ExitFigures struct {
	ExitNOI           float64 `json:"exit_noi"`
	ExitValue         float64 `json:"exit_value"`
	SellingCosts      float64 `json:"selling_costs"`
	LoanBalanceAtExit float64 `json:"loan_balance_at_exit"`
	ExitProceeds      float64 `json:"exit_proceeds"`
}

// SourcesAndUses is the closing table.
type SourcesAndUses struct {
	LoanAmount       float64 `json:"loan_amount"`
	EquityRequired   float64 `json:"equity_required"`
	TotalSources     float64 `json:"total_sources"`
	PurchasePrice    float64 `json:"purchase_price"`
	ClosingCosts     float64 `json:"closing_costs"`
	RenovationBudget float64 `json:"renovation_budget"`
	OriginationFee   float64 `json:"origination_fee"`
	TotalUses        float64 `json:"total_uses"`
}

// SensitivityGrid is the 5x5 exit-cap x purchase-price IRR grid. IRR values
// are percent rounded to one decimal. Rows follow CapRateDeltas, columns
// PriceDeltas.
type SensitivityGrid struct {
	CapRateDeltas []float64   `json:"cap_rate_deltas"`
	PriceDeltas   []float64   `json:"price_deltas"` // fractional, e.g. -0.10
	IRR           [][]float64 `json:"irr"`
}

// DealOutputs is the full derived result of the base pipeline. Recomputed
// wholesale on every input change.
type DealOutputs struct {
	Income         IncomeBreakdown  `json:"income"`
	ExpenseDetail  ExpenseBreakdown `json:"expense_detail"`
	NOI            float64          `json:"noi"`
	Debt           DebtFigures      `json:"debt"`
	Returns        ReturnMetrics    `json:"returns"`
	CashFlows      []CashFlowYear   `json:"cash_flows"`
	Exit           ExitFigures      `json:"exit"`
	SourcesAndUses SourcesAndUses   `json:"sources_and_uses"`
	Sensitivity    SensitivityGrid  `json:"sensitivity"`
}

// fixedExpenseRows flattens the category struct for summation and reporting.
func (e *OperatingExpenses) fixedExpenseRows() []ExpenseRow {
	return []ExpenseRow{
		e.PropertyTaxes, e.Insurance, e.Licenses, e.FireSafety,
		e.Electricity, e.Gas, e.WaterSewer, e.Trash,
		e.Payroll, e.OnsiteManager, e.LegalFees, e.AccountingFees,
		e.Marketing, e.RepairsMaint, e.Turnover, e.Landscaping,
		e.SnowRemoval, e.PestControl, e.Elevator, e.Security,
		e.Supplies, e.AdminOther, e.ReplacementReserves,
	}
}

// TotalUnits counts the rent roll.
func (d *DealInputs) TotalUnits() int {
	total := 0
	for _, row := range d.UnitMix {
		total += row.Count
	}
	return total
}
