// Package deal exposes the underwriting engine over HTTP. Handlers are thin:
// decode the request, run the pure calculation, encode the result. All state
// lives in the request.
package deal

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/promote"
	"deal_underwriter/pkg/core/structures"
	"deal_underwriter/pkg/report"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// preamble applies CORS headers and answers preflight. Returns false when the
// request is already handled.
func preamble(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// HandleAnalyze runs the full base pipeline for one deal.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var inputs deal.DealInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("analyze",
		zap.Float64("purchase_price", inputs.PurchasePrice),
		zap.Int("units", inputs.TotalUnits()),
		zap.Int("hold_years", inputs.HoldPeriodYears))

	respond(w, deal.CalculateAll(inputs))
}

// HandleStructure runs one capital structure.
func (h *Handler) HandleStructure(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var inputs structures.StructuredDealInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysis := structures.CalculateDealStructure(inputs)
	h.logger.Info("structure",
		zap.String("type", string(inputs.Type)),
		zap.String("id", analysis.ID),
		zap.Float64("irr", analysis.IRR))

	respond(w, analysis)
}

// CompareRequest selects the structures to run against one shared base.
// Absent Types means all five; Overrides replace the per-structure defaults.
type CompareRequest struct {
	Base      structures.BaseDealTerms                                     `json:"base"`
	Types     []structures.StructureType                                   `json:"types,omitempty"`
	Overrides map[structures.StructureType]structures.StructuredDealInputs `json:"overrides,omitempty"`
}

// HandleCompare runs a side-by-side structure comparison.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Types) == 0 {
		req.Types = structures.AllStructureTypes()
	}

	h.logger.Info("compare", zap.Int("structures", len(req.Types)))
	respond(w, structures.CompareDealStructures(req.Base, req.Types, req.Overrides))
}

// PromoteRequest pairs a base deal with a waterfall configuration. The base
// deal is recalculated server-side so the ledger always reflects the inputs.
type PromoteRequest struct {
	Deal    deal.DealInputs       `json:"deal"`
	Promote promote.PromoteInputs `json:"promote"`
}

// HandlePromote runs the N-tier waterfall over a calculated deal.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outputs := deal.Calculate(req.Deal)
	result := promote.CalculatePromote(req.Deal, outputs, req.Promote)

	h.logger.Info("promote",
		zap.Int("tiers", len(req.Promote.Tiers)),
		zap.Float64("lp_irr", result.LPIRR),
		zap.Float64("promote_earned", result.TotalPromoteEarned))

	respond(w, result)
}

// PromoteSensitivityRequest adds the grid axes. Empty deltas fall back to the
// engine's 5x5 defaults.
type PromoteSensitivityRequest struct {
	Deal             deal.DealInputs       `json:"deal"`
	Promote          promote.PromoteInputs `json:"promote"`
	ExitCapDeltas    []float64             `json:"exit_cap_deltas,omitempty"`
	RentGrowthDeltas []float64             `json:"rent_growth_deltas,omitempty"`
}

// HandlePromoteSensitivity runs the full-recompute promote grid.
func (h *Handler) HandlePromoteSensitivity(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req PromoteSensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	grid := promote.CalculatePromoteSensitivity(req.Deal, req.Promote, req.ExitCapDeltas, req.RentGrowthDeltas)
	h.logger.Info("promote sensitivity",
		zap.Int("rows", len(grid.ExitCapDeltas)),
		zap.Int("cols", len(grid.RentGrowthDeltas)))

	respond(w, grid)
}

// ReportResponse carries the rendered comparison in both formats.
type ReportResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// HandleReport runs a comparison and renders it as Markdown plus HTML.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !preamble(w, r) {
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Types) == 0 {
		req.Types = structures.AllStructureTypes()
	}

	analyses := structures.CompareDealStructures(req.Base, req.Types, req.Overrides)
	markdown := report.ComparisonMarkdown(analyses)
	html, err := report.RenderHTML(markdown)
	if err != nil {
		h.logger.Error("report render", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond(w, ReportResponse{Markdown: markdown, HTML: html})
}
