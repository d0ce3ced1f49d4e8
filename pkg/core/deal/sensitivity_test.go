package deal

import (
	"math"
	"reflect"
	"testing"
)

func TestSensitivityGridShape(t *testing.T) {
	grid := AnalyzeSensitivity(sampleInputs())

	if len(grid.CapRateDeltas) != 5 || len(grid.PriceDeltas) != 5 {
		t.Fatalf("grid axes must be 5x5, got %dx%d", len(grid.CapRateDeltas), len(grid.PriceDeltas))
	}
	if len(grid.IRR) != 5 {
		t.Fatalf("expected 5 IRR rows, got %d", len(grid.IRR))
	}
	for i, row := range grid.IRR {
		if len(row) != 5 {
			t.Errorf("row %d: expected 5 cells, got %d", i, len(row))
		}
	}
}

func TestSensitivityCenterCellMatchesBase(t *testing.T) {
	inputs := sampleInputs()
	grid := AnalyzeSensitivity(inputs)
	base := CalculateAll(inputs)

	// Center cell is the zero-delta rerun, rounded to one decimal.
	want := math.Round(base.Returns.IRR*10) / 10
	if grid.IRR[2][2] != want {
		t.Errorf("center cell should equal the base IRR %f, got %f", want, grid.IRR[2][2])
	}
}

func TestSensitivityCapAxisMonotone(t *testing.T) {
	grid := AnalyzeSensitivity(sampleInputs())

	// Down a column, the exit cap rises, so IRR cannot improve.
	for j := 0; j < 5; j++ {
		for i := 1; i < 5; i++ {
			if grid.IRR[i][j] > grid.IRR[i-1][j]+1e-9 {
				t.Errorf("IRR should be non-increasing down the cap axis: [%d][%d]", i, j)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	// Two calls with identical inputs produce identical outputs, grid and
	// all — the engine is a pure function.
	a := CalculateAll(sampleInputs())
	b := CalculateAll(sampleInputs())

	if !reflect.DeepEqual(a, b) {
		t.Errorf("byte-identical inputs must produce byte-identical outputs")
	}
}
