package structures

import (
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// calculateStructure dispatches on the union tag. Unknown tags fall through
// to the all-cash model so the call never raises.
func calculateStructure(inputs StructuredDealInputs) DealAnalysis {
	switch inputs.Type {
	case StructureConventional:
		return calculateConventional(inputs)
	case StructureBridgeRefi:
		return calculateBridgeRefi(inputs)
	case StructureAssumable:
		return calculateAssumable(inputs)
	case StructureSyndication:
		return calculateSyndication(inputs)
	default:
		return calculateAllCash(inputs)
	}
}

// CalculateDealStructure runs one structure calculator and attaches the
// analysis ID and the 3-point exit sensitivity band.
func CalculateDealStructure(inputs StructuredDealInputs) DealAnalysis {
	analysis := calculateStructure(inputs)
	analysis.ID = uuid.New().String()
	analysis.ExitSensitivity = exitSensitivity(inputs, analysis.IRR)
	return analysis
}

// exitSensitivity reruns the structure at the optimistic and conservative
// exit caps. The band comes from the market cap-rate estimate's confidence
// interval when one is supplied, otherwise +/-0.5 around the exit cap. This
// 3-point band is a distinct analysis from the base engine's 5x5 grid and
// the two are intentionally not reconciled.
func exitSensitivity(inputs StructuredDealInputs, baseIRR float64) ExitSensitivity {
	optimisticCap := inputs.Base.ExitCapRatePercent - 0.5
	conservativeCap := inputs.Base.ExitCapRatePercent + 0.5
	if est := inputs.Base.MarketCapRate; est != nil && est.LowBand > 0 && est.HighBand > 0 {
		optimisticCap = est.LowBand
		conservativeCap = est.HighBand
	}

	irrAt := func(capPercent float64) float64 {
		scenario := inputs
		scenario.Base.ExitCapRatePercent = capPercent
		return calculateStructure(scenario).IRR
	}

	return ExitSensitivity{
		OptimisticCap:   optimisticCap,
		ConservativeCap: conservativeCap,
		OptimisticIRR:   irrAt(optimisticCap),
		BaseIRR:         baseIRR,
		ConservativeIRR: irrAt(conservativeCap),
	}
}

// CompareDealStructures runs a set of structures against one shared base,
// applying per-structure overrides where supplied and defaults everywhere
// else. Structures are independent pure calculations, so each one runs on
// its own goroutine; result order follows the requested order.
func CompareDealStructures(base BaseDealTerms, types []StructureType, overrides map[StructureType]StructuredDealInputs) []DealAnalysis {
	scenarios := lo.Map(types, func(structureType StructureType, _ int) StructuredDealInputs {
		if override, ok := overrides[structureType]; ok {
			override.Type = structureType
			return override
		}
		return GetDefaultStructureInputs(structureType, base)
	})

	analyses := make([]DealAnalysis, len(scenarios))
	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		go func(i int, scenario StructuredDealInputs) {
			defer wg.Done()
			analyses[i] = CalculateDealStructure(scenario)
		}(i, scenario)
	}
	wg.Wait()

	return analyses
}

// GetDefaultStructureInputs produces sane structure-specific defaults off
// the shared base: 75% LTV conventional at the market rate, 80%/10% bridge
// with a 75% LTV takeout, a 3.5% assumed legacy loan, and an 80/20 LP/GP
// syndication with an 8% pref over 70/30.
func GetDefaultStructureInputs(structureType StructureType, base BaseDealTerms) StructuredDealInputs {
	inputs := StructuredDealInputs{Type: structureType, Base: base}

	marketRate := base.MarketMortgageRate
	if marketRate == 0 {
		marketRate = 0.065
	}

	switch structureType {
	case StructureConventional:
		inputs.Conventional = &ConventionalTerms{
			LTVPercent:            75,
			InterestRate:          marketRate,
			AmortizationYears:     30,
			OriginationFeePercent: 1,
		}
	case StructureBridgeRefi:
		inputs.BridgeRefi = &BridgeRefiTerms{
			BridgeLTVPercent:      80,
			BridgeRate:            0.10,
			BridgePoints:          2,
			BridgeMonths:          12,
			RentBumpPercent:       15,
			RefiLTVPercent:        75,
			RefiRate:              marketRate,
			RefiAmortizationYears: 30,
			RefiFeePercent:        1,
		}
	case StructureAssumable:
		inputs.Assumable = &AssumableTerms{
			OriginalPrincipal:         base.PurchasePrice * 0.65,
			OriginalRate:              0.035,
			OriginalAmortizationYears: 30,
			MonthsElapsed:             60,
		}
	case StructureSyndication:
		inputs.Syndication = &SyndicationTerms{
			Financing: ConventionalTerms{
				LTVPercent:            75,
				InterestRate:          marketRate,
				AmortizationYears:     30,
				OriginationFeePercent: 1,
			},
			GPEquityPercent:            20,
			LPEquityPercent:            80,
			PreferredReturnPercent:     8,
			GPPromotePercent:           30,
			HurdleIRRPercent:           15,
			HurdlePromotePercent:       50,
			AcquisitionFeePercent:      2,
			AssetMgmtFeePercent:        2,
			DispositionFeePercent:      1,
			ConstructionMgmtFeePercent: 5,
		}
	}

	return inputs
}
