package kyb

import (
	"fmt"
	"strings"
)

// Aggregate combines an ordered set of check results into one overall status
// under the strict precedence lattice fail > review > verified:
//   - any failing check poisons the whole verdict,
//   - any review-needed check escalates an otherwise clean verdict,
//   - verified only when every check is verified.
//
// No weighting, no partial credit. Same check sequence always yields the
// same status and reason.
func Aggregate(checks []CheckResult) (Status, string) {
	overall := StatusVerified
	for _, check := range checks {
		if check.Status.precedence() > overall.precedence() {
			overall = check.Status
		}
	}

	switch overall {
	case StatusFail:
		return StatusFail, fmt.Sprintf("Verification failed due to: %s",
			strings.Join(checkNamesWithStatus(checks, StatusFail), ", "))
	case StatusReview:
		return StatusReview, fmt.Sprintf("Verification requires review due to: %s",
			strings.Join(checkNamesWithStatus(checks, StatusReview), ", "))
	default:
		return StatusVerified, "All verification checks passed successfully"
	}
}

func checkNamesWithStatus(checks []CheckResult, status Status) []string {
	var names []string
	for _, check := range checks {
		if check.Status == status {
			names = append(names, check.CheckName)
		}
	}
	return names
}
