package kyb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	verified := func(name string) CheckResult {
		return CheckResult{CheckName: name, Status: StatusVerified}
	}
	review := func(name string) CheckResult {
		return CheckResult{CheckName: name, Status: StatusReview}
	}
	fail := func(name string) CheckResult {
		return CheckResult{CheckName: name, Status: StatusFail}
	}

	t.Run("all verified", func(t *testing.T) {
		status, reason := Aggregate([]CheckResult{verified("a"), verified("b")})
		assert.Equal(t, StatusVerified, status)
		assert.Equal(t, "All verification checks passed successfully", reason)
	})

	t.Run("single review escalates", func(t *testing.T) {
		status, reason := Aggregate([]CheckResult{verified("a"), review("b"), verified("c")})
		assert.Equal(t, StatusReview, status)
		assert.Equal(t, "Verification requires review due to: b", reason)
	})

	t.Run("single fail poisons", func(t *testing.T) {
		status, reason := Aggregate([]CheckResult{verified("a"), fail("b")})
		assert.Equal(t, StatusFail, status)
		assert.Equal(t, "Verification failed due to: b", reason)
	})

	t.Run("fail dominates review", func(t *testing.T) {
		status, reason := Aggregate([]CheckResult{review("a"), fail("b"), review("c")})
		assert.Equal(t, StatusFail, status)
		// Only failing checks are named when the verdict fails.
		assert.Equal(t, "Verification failed due to: b", reason)
	})

	t.Run("multiple fails all named in input order", func(t *testing.T) {
		status, reason := Aggregate([]CheckResult{fail("a"), verified("b"), fail("c")})
		assert.Equal(t, StatusFail, status)
		assert.Equal(t, "Verification failed due to: a, c", reason)
	})

	t.Run("empty checks aggregate to verified", func(t *testing.T) {
		status, _ := Aggregate(nil)
		assert.Equal(t, StatusVerified, status)
	})
}
