package kyb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckJurisdiction(t *testing.T) {
	tests := []struct {
		name         string
		jurisdiction string
		wantStatus   Status
		wantReason   string
	}{
		{"whitelisted US", "US", StatusVerified, "Jurisdiction US is whitelisted"},
		{"whitelisted GB", "GB", StatusVerified, "Jurisdiction GB is whitelisted"},
		{"unknown code fails", "XX", StatusFail, "Jurisdiction XX is not whitelisted"},
		{"empty fails", "", StatusFail, "Jurisdiction  is not whitelisted"},
		{"lowercase is not matched", "us", StatusFail, "Jurisdiction us is not whitelisted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkJurisdiction(tt.jurisdiction)
			assert.Equal(t, CheckJurisdiction, result.CheckName)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantReason, result.Reason)
			assert.Equal(t, tt.jurisdiction, result.Details["jurisdiction"])
		})
	}
}

func TestCheckEntityAge(t *testing.T) {
	tests := []struct {
		name       string
		ageDays    int
		wantStatus Status
	}{
		{"exactly one year passes", 365, StatusVerified},
		{"older than one year passes", 3650, StatusVerified},
		{"one day short requires review", 364, StatusReview},
		{"zero age requires review", 0, StatusReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkEntityAge(tt.ageDays)
			assert.Equal(t, CheckEntityAge, result.CheckName)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.ageDays, result.Details["entity_age_days"])
			assert.Equal(t, minEntityAgeDays, result.Details["minimum_required_days"])
		})
	}

	t.Run("young entity never fails outright", func(t *testing.T) {
		result := checkEntityAge(1)
		assert.NotEqual(t, StatusFail, result.Status)
	})
}

func TestCheckSanctions(t *testing.T) {
	t.Run("no flags passes", func(t *testing.T) {
		result := checkSanctions(nil)
		assert.Equal(t, StatusVerified, result.Status)
		assert.Equal(t, "Sanctions screening passed with 0 flags checked", result.Reason)
	})

	t.Run("benign flags pass", func(t *testing.T) {
		result := checkSanctions([]string{"pep_screening_clear", "adverse_media_clear"})
		assert.Equal(t, StatusVerified, result.Status)
		assert.Equal(t, false, result.Details["sanctions_detected"])
	})

	t.Run("keyword flag fails", func(t *testing.T) {
		result := checkSanctions([]string{"money_laundering"})
		assert.Equal(t, StatusFail, result.Status)
		assert.Equal(t, "Sanctions screening failed with 1 flags checked", result.Reason)
		assert.Equal(t, true, result.Details["sanctions_detected"])
	})

	t.Run("match is exact and case-sensitive", func(t *testing.T) {
		// Neither a substring nor a different casing of a keyword matches.
		result := checkSanctions([]string{"Money_Laundering", "fraud_cleared", "no-fraud"})
		assert.Equal(t, StatusVerified, result.Status)
	})

	t.Run("one bad flag among clean ones fails", func(t *testing.T) {
		result := checkSanctions([]string{"clear", "terrorist", "clear_2"})
		assert.Equal(t, StatusFail, result.Status)
		assert.Equal(t, 3, result.Details["flags_checked"])
	})
}

func TestCheckBusinessName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStatus Status
	}{
		{"normal name passes", "Acme Corporation", StatusVerified},
		{"empty name fails", "", StatusFail},
		{"single character fails", "A", StatusFail},
		{"digits only fails", "12345", StatusFail},
		{"suspicious pattern requires review", "Test Company LLC", StatusReview},
		{"suspicious pattern matched case-insensitively", "DEMO Industries", StatusReview},
		{"two characters with a letter passes", "A1", StatusVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkBusinessName(tt.input)
			assert.Equal(t, CheckBusinessName, result.CheckName)
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}

	t.Run("name above maximum length fails", func(t *testing.T) {
		long := make([]byte, maxNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		result := checkBusinessName(string(long))
		assert.Equal(t, StatusFail, result.Status)
		assert.Equal(t, false, result.Details["has_maximum_length"])
	})
}

func TestCheckRegistrationStatus(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantStatus Status
	}{
		{"active is valid", "active", StatusVerified},
		{"registered is valid", "registered", StatusVerified},
		{"incorporated is valid", "incorporated", StatusVerified},
		{"good_standing is valid", "good_standing", StatusVerified},
		{"mixed case normalized", "Active", StatusVerified},
		{"unknown requires review", "unknown", StatusReview},
		{"dissolved requires review", "dissolved", StatusReview},
		{"empty requires review", "", StatusReview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checkRegistrationStatus(tt.input)
			assert.Equal(t, CheckRegistration, result.CheckName)
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestEvaluatorsOrder(t *testing.T) {
	entity := Entity{
		BusinessName:       "Acme Corporation",
		Jurisdiction:       "US",
		EntityAgeDays:      730,
		RegistrationStatus: "active",
	}

	require.Len(t, evaluators, 5)
	wantOrder := []string{
		CheckJurisdiction,
		CheckEntityAge,
		CheckSanctions,
		CheckBusinessName,
		CheckRegistration,
	}
	for i, eval := range evaluators {
		assert.Equal(t, wantOrder[i], eval(entity).CheckName)
	}
}
