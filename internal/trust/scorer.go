package trust

import "math"

// modelType tags score results so consumers can detect formula changes.
// The formula is a deterministic stub, not a trained model.
const modelType = "trust_signal_ml_stub_v1"

// Feature names in declaration order. This order breaks ties when ranking
// contributions for explanations.
const (
	featureDeviceReputation = "device_reputation"
	featureVelocity         = "velocity"
	featureIPRisk           = "ip_risk"
	featureHistoryLen       = "history_len"
)

var featureOrder = []string{
	featureDeviceReputation,
	featureVelocity,
	featureIPRisk,
	featureHistoryLen,
}

// featureWeights is the fixed linear model. The weights sum to 1 over unit
// features, so the weighted sum is naturally bounded; values are a documented
// contract, not something to re-derive.
var featureWeights = map[string]float64{
	featureDeviceReputation: 0.35,
	featureVelocity:         0.25,
	featureIPRisk:           0.25,
	featureHistoryLen:       0.15,
}

// Normalization caps: velocity saturates at 10 tx/hour, history at 100
// transactions.
const (
	velocityCap   = 10.0
	historyLenCap = 100.0
)

// confidenceFloor is the minimum model confidence reported.
const confidenceFloor = 0.5

// Score computes the trust score and its per-feature breakdown. It is pure
// and deterministic: identical contexts yield byte-identical results, and
// TrustScore is exactly the sum of the contributions.
func Score(tc Context) ScoreResult {
	features := normalizeFeatures(tc)

	contributions := make(map[string]float64, len(featureOrder))
	score := 0.0
	for _, name := range featureOrder {
		contribution := features[name] * featureWeights[name]
		contributions[name] = contribution
		score += contribution
	}
	score = clamp01(score)

	return ScoreResult{
		TrustScore:           score,
		RiskLevel:            ClassifyRisk(score),
		Confidence:           confidence(features),
		ModelType:            modelType,
		FeatureContributions: contributions,
	}
}

// normalizeFeatures clamps each raw feature into [0,1] and orients it so
// that higher always means more trustworthy: velocity and IP risk are
// inverted because their raw values measure risk.
func normalizeFeatures(tc Context) map[string]float64 {
	return map[string]float64{
		featureDeviceReputation: clamp01(tc.DeviceReputation),
		featureVelocity:         1.0 - clamp01(tc.Velocity/velocityCap),
		featureIPRisk:           1.0 - clamp01(tc.IPRisk),
		featureHistoryLen:       clamp01(float64(tc.HistoryLen) / historyLenCap),
	}
}

// confidence reflects feature consistency: widely spread features lower the
// model's confidence, floored so the signal is never reported as useless.
func confidence(features map[string]float64) float64 {
	mean := 0.0
	for _, name := range featureOrder {
		mean += features[name]
	}
	mean /= float64(len(featureOrder))

	variance := 0.0
	for _, name := range featureOrder {
		d := features[name] - mean
		variance += d * d
	}
	variance /= float64(len(featureOrder))

	return math.Max(confidenceFloor, 1.0-math.Sqrt(variance))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
