package trust

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Explainer is the optional external collaborator that replaces the built-in
// template with richer prose. Implementations must return a non-empty string
// for the same inputs the template accepts; any failure degrades to the
// template and never reaches the caller.
type Explainer interface {
	Explain(ctx context.Context, score ScoreResult, adjustments []RailAdjustment, tc Context) (string, error)
}

// Key-factor thresholds used by explanations.
const (
	lowDeviceReputation = 0.5
	highVelocity        = 5.0
	highIPRisk          = 0.7
	shortHistory        = 10
	strongHistory       = 50
)

// KeyFactors names the context features that drove the risk assessment, in
// fixed declaration order.
func KeyFactors(tc Context) []string {
	var factors []string
	if tc.DeviceReputation < lowDeviceReputation {
		factors = append(factors, "device reputation")
	}
	if tc.Velocity > highVelocity {
		factors = append(factors, "high velocity")
	}
	if tc.IPRisk > highIPRisk {
		factors = append(factors, "IP risk")
	}
	if tc.HistoryLen < shortHistory {
		factors = append(factors, "limited history")
	}
	return factors
}

// TopFactors returns feature names sorted by contribution magnitude,
// descending, with ties broken by feature declaration order.
func TopFactors(contributions map[string]float64) []string {
	names := make([]string, len(featureOrder))
	copy(names, featureOrder)

	rank := make(map[string]int, len(featureOrder))
	for i, name := range featureOrder {
		rank[name] = i
	}

	sort.SliceStable(names, func(i, j int) bool {
		mi := math.Abs(contributions[names[i]])
		mj := math.Abs(contributions[names[j]])
		if mi != mj {
			return mi > mj
		}
		return rank[names[i]] < rank[names[j]]
	})
	return names
}

// Explain renders the deterministic template explanation for a signal.
func Explain(score ScoreResult, adjustments []RailAdjustment, tc Context) string {
	factors := KeyFactors(tc)

	var b strings.Builder
	switch score.RiskLevel {
	case RiskHigh:
		fmt.Fprintf(&b, "High risk detected (score: %.2f)", score.TrustScore)
		if len(factors) > 0 {
			fmt.Fprintf(&b, " due to %s", strings.Join(factors, ", "))
		}
		if ach := findAdjustment(adjustments, "ACH"); ach != nil && ach.AdjustmentFactor < 0.5 {
			b.WriteString(". ACH down-weighted due to elevated risk")
		}
	case RiskMedium:
		fmt.Fprintf(&b, "Medium risk detected (score: %.2f)", score.TrustScore)
		if len(factors) > 0 {
			fmt.Fprintf(&b, " due to %s", strings.Join(factors, ", "))
		}
		b.WriteString(". Minor rail adjustments applied")
	default:
		fmt.Fprintf(&b, "Low risk detected (score: %.2f)", score.TrustScore)
		if tc.HistoryLen > strongHistory {
			b.WriteString(" with strong transaction history")
		}
		b.WriteString(". No significant rail adjustments needed")
	}

	top := TopFactors(score.FeatureContributions)
	fmt.Fprintf(&b, ". Leading contributions: %s %.3f, %s %.3f",
		top[0], score.FeatureContributions[top[0]],
		top[1], score.FeatureContributions[top[1]],
	)

	return b.String()
}

func findAdjustment(adjustments []RailAdjustment, railType string) *RailAdjustment {
	for i := range adjustments {
		if adjustments[i].RailType == railType {
			return &adjustments[i]
		}
	}
	return nil
}
