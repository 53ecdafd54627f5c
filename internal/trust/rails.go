package trust

import "fmt"

// Risk band thresholds over the trust score. The bands are non-overlapping
// and exhaustive: [0.7, 1] low, [0.4, 0.7) medium, [0, 0.4) high.
const (
	lowRiskMinScore    = 0.7
	mediumRiskMinScore = 0.4
)

// ClassifyRisk maps a trust score to its risk band.
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= lowRiskMinScore:
		return RiskLow
	case score >= mediumRiskMinScore:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// railPolicy is the adjustment-factor table keyed by risk level and rail
// type. Higher risk disfavors slower, less reversible rails; rails absent
// from a band pass through unchanged. Modeled as data rather than branching
// so the table can be tested exhaustively and extended without touching
// control flow.
var railPolicy = map[RiskLevel]map[string]float64{
	RiskLow: {
		"ACH":    1.0,
		"debit":  1.0,
		"credit": 1.0,
	},
	RiskMedium: {
		"ACH":    0.8,
		"debit":  1.0,
		"credit": 1.0,
	},
	RiskHigh: {
		"ACH":    0.3,
		"debit":  0.7,
		"credit": 1.0,
	},
}

// Adjustment factors are clamped so no rail can be zeroed out or boosted
// without bound.
const (
	minAdjustmentFactor = 0.1
	maxAdjustmentFactor = 1.5
)

// AdjustRails derives one adjustment per input rail, preserving the caller's
// order. The policy is total: rail types outside the table pass through with
// factor 1.0 because the rail catalog is caller-defined and open-ended.
func AdjustRails(score float64, level RiskLevel, rails []RailWeight) []RailAdjustment {
	factors := railPolicy[level]

	adjustments := make([]RailAdjustment, 0, len(rails))
	for _, rail := range rails {
		factor := 1.0
		if f, ok := factors[rail.RailType]; ok {
			factor = clampFactor(f)
		}

		adjustments = append(adjustments, RailAdjustment{
			RailType:         rail.RailType,
			OriginalWeight:   rail.Weight,
			AdjustedWeight:   rail.Weight * factor,
			AdjustmentFactor: factor,
			Reason: fmt.Sprintf("Trust score %.2f (%s risk) affects %s preference",
				score, level, rail.RailType),
		})
	}
	return adjustments
}

func clampFactor(f float64) float64 {
	if f < minAdjustmentFactor {
		return minAdjustmentFactor
	}
	if f > maxAdjustmentFactor {
		return maxAdjustmentFactor
	}
	return f
}
