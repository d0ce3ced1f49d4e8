// Package promote implements the standalone N-tier distribution waterfall:
// ordered tiers (preferred return, catch-up, profit splits, optionally gated
// by an LP IRR hurdle) applied year by year to a base deal's cash flows, with
// per-year and lifetime GP/LP ledgers. It is structure-agnostic and a
// different, richer model than the syndication structure's inline 2-tier
// waterfall; the two are intentionally separate products.
package promote

// =============================================================================
// WATERFALL CONFIGURATION
// =============================================================================

// WaterfallTier is one ordered rung. The populated fields decide its kind:
// a PreferredReturnPercent makes it a pref tier, a CatchUpPercent a catch-up
// tier, otherwise it is a profit-split tier consuming all remaining cash at
// its GP/LP percentages. IRRHurdlePercent, when set, gates the tier on the
// LP's running-to-date IRR.
type WaterfallTier struct {
	Name                   string  `json:"name"`
	PreferredReturnPercent float64 `json:"preferred_return_percent,omitempty"`
	CatchUpPercent         float64 `json:"catch_up_percent,omitempty"`
	GPSplitPercent         float64 `json:"gp_split_percent,omitempty"`
	LPSplitPercent         float64 `json:"lp_split_percent,omitempty"`
	IRRHurdlePercent       float64 `json:"irr_hurdle_percent,omitempty"`
}

// PromoteInputs configures one waterfall run against a base deal.
type PromoteInputs struct {
	GPEquityPercent float64         `json:"gp_equity_percent"`
	LPEquityPercent float64         `json:"lp_equity_percent"`
	Tiers           []WaterfallTier `json:"tiers"`
}

// =============================================================================
// DISTRIBUTION LEDGER
// =============================================================================

// YearDistribution is one year of the ledger. LPTotal + GPTotal equals
// DistributableCash; an unpaid preferred return shows up as PrefShortfall
// carried into the next year, not as missing cash.
type YearDistribution struct {
	Year              int     `json:"year"`
	DistributableCash float64 `json:"distributable_cash"`
	LPPreferred       float64 `json:"lp_preferred"`
	PrefShortfall     float64 `json:"pref_shortfall"` // outstanding after this year
	GPCatchUp         float64 `json:"gp_catch_up"`
	GPSplit           float64 `json:"gp_split"`
	LPSplit           float64 `json:"lp_split"`
	GPTotal           float64 `json:"gp_total"`
	LPTotal           float64 `json:"lp_total"`
	PromoteEarned     float64 `json:"promote_earned"`
	CumulativeGP      float64 `json:"cumulative_gp"`
	CumulativeLP      float64 `json:"cumulative_lp"`
}

// PromoteOutputs is the full waterfall result: the per-year ledger plus each
// party's lifetime return figures.
type PromoteOutputs struct {
	GPEquity float64 `json:"gp_equity"`
	LPEquity float64 `json:"lp_equity"`

	Years []YearDistribution `json:"years"`

	TotalGPDistributions float64 `json:"total_gp_distributions"`
	TotalLPDistributions float64 `json:"total_lp_distributions"`
	TotalPromoteEarned   float64 `json:"total_promote_earned"`

	GPIRR            float64 `json:"gp_irr"` // percent
	LPIRR            float64 `json:"lp_irr"` // percent
	GPEquityMultiple float64 `json:"gp_equity_multiple"`
	LPEquityMultiple float64 `json:"lp_equity_multiple"`
}

// PromoteSensitivity is the exit-cap x rent-growth grid of party IRRs. Every
// cell is a full base-deal recomputation plus waterfall. IRR values are
// percent rounded to one decimal; rows follow ExitCapDeltas, columns
// RentGrowthDeltas.
type PromoteSensitivity struct {
	ExitCapDeltas    []float64   `json:"exit_cap_deltas"`
	RentGrowthDeltas []float64   `json:"rent_growth_deltas"`
	GPIRR            [][]float64 `json:"gp_irr"`
	LPIRR            [][]float64 `json:"lp_irr"`
}
