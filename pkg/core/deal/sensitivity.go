package deal

import (
	"math"
	"sync"

	"github.com/samber/lo"
)

// The base grid is always 5x5 on these two axes. The structure engine's
// narrower 3-point exit band is a separate analysis and lives with the
// structure dispatcher.
var (
	capRateDeltas = []float64{-1.0, -0.5, 0, 0.5, 1.0}
	priceDeltas   = []float64{-0.10, -0.05, 0, 0.05, 0.10}
)

// AnalyzeSensitivity reruns the full return calculation for every
// exit-cap-delta x price-delta combination. Cells are independent pure
// recomputations, so each one runs on its own goroutine.
func AnalyzeSensitivity(inputs DealInputs) SensitivityGrid {
	irr := lo.Map(capRateDeltas, func(_ float64, _ int) []float64 {
		return make([]float64, len(priceDeltas))
	})

	var wg sync.WaitGroup
	for i, capDelta := range capRateDeltas {
		for j, priceDelta := range priceDeltas {
			wg.Add(1)
			go func(i, j int, capDelta, priceDelta float64) {
				defer wg.Done()

				cell := inputs
				cell.ExitCapRatePercent += capDelta
				cell.PurchasePrice *= 1 + priceDelta

				result := Calculate(cell)
				irr[i][j] = math.Round(result.Returns.IRR*10) / 10
			}(i, j, capDelta, priceDelta)
		}
	}
	wg.Wait()

	return SensitivityGrid{
		CapRateDeltas: append([]float64(nil), capRateDeltas...),
		PriceDeltas:   append([]float64(nil), priceDeltas...),
		IRR:           irr,
	}
}
