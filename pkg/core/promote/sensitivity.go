package promote

import (
	"math"
	"sync"

	"github.com/samber/lo"

	"deal_underwriter/pkg/core/deal"
)

// Fallback grid when the caller passes no deltas, mirroring the base
// engine's exit-cap axis.
var (
	defaultExitCapDeltas    = []float64{-1.0, -0.5, 0, 0.5, 1.0}
	defaultRentGrowthDeltas = []float64{-2.0, -1.0, 0, 1.0, 2.0}
)

// CalculatePromoteSensitivity reruns the entire base-deal calculation plus
// the waterfall for every exit-cap-delta x rent-growth-delta combination.
// This is the most compute-heavy path in the core — each cell is a full
// recomputation — and every cell is an independent pure call, so each one
// runs on its own goroutine.
func CalculatePromoteSensitivity(inputs deal.DealInputs, promote PromoteInputs, exitCapDeltas, rentGrowthDeltas []float64) PromoteSensitivity {
	if len(exitCapDeltas) == 0 {
		exitCapDeltas = defaultExitCapDeltas
	}
	if len(rentGrowthDeltas) == 0 {
		rentGrowthDeltas = defaultRentGrowthDeltas
	}

	gpIRR := lo.Map(exitCapDeltas, func(_ float64, _ int) []float64 {
		return make([]float64, len(rentGrowthDeltas))
	})
	lpIRR := lo.Map(exitCapDeltas, func(_ float64, _ int) []float64 {
		return make([]float64, len(rentGrowthDeltas))
	})

	var wg sync.WaitGroup
	for i, capDelta := range exitCapDeltas {
		for j, growthDelta := range rentGrowthDeltas {
			wg.Add(1)
			go func(i, j int, capDelta, growthDelta float64) {
				defer wg.Done()

				cell := inputs
				cell.ExitCapRatePercent += capDelta
				cell.RentGrowthPercent += growthDelta

				outputs := deal.Calculate(cell)
				result := CalculatePromote(cell, outputs, promote)
				gpIRR[i][j] = math.Round(result.GPIRR*10) / 10
				lpIRR[i][j] = math.Round(result.LPIRR*10) / 10
			}(i, j, capDelta, growthDelta)
		}
	}
	wg.Wait()

	return PromoteSensitivity{
		ExitCapDeltas:    append([]float64(nil), exitCapDeltas...),
		RentGrowthDeltas: append([]float64(nil), rentGrowthDeltas...),
		GPIRR:            gpIRR,
		LPIRR:            lpIRR,
	}
}
