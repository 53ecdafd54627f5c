package kyb

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Check names, in fixed evaluation order.
const (
	CheckJurisdiction = "jurisdiction_verification"
	CheckEntityAge    = "entity_age_verification"
	CheckSanctions    = "sanctions_screening"
	CheckBusinessName = "business_name_validation"
	CheckRegistration = "registration_status_verification"
)

// Jurisdictions with favorable regulatory environments. Kept sorted so check
// details are byte-stable across runs.
var jurisdictionWhitelist = []string{
	"AU", "CA", "CH", "DE", "DK", "FI", "FR", "GB",
	"IE", "LU", "NL", "NO", "SE", "SG", "US",
}

// minEntityAgeDays is the minimum entity age (one year).
const minEntityAgeDays = 365

// Sanctions-related flags that fail screening outright. Matching is a
// case-sensitive exact comparison against the supplied flags.
var sanctionsKeywords = []string{
	"corruption",
	"drug_trafficking",
	"embargo",
	"fraud",
	"money_laundering",
	"regulatory_violation",
	"sanctions",
	"tax_evasion",
	"terrorist",
}

// Substrings that mark a business name as suspicious (matched
// case-insensitively). These trigger review, not failure.
var suspiciousNamePatterns = []string{"test", "demo", "example", "fake", "invalid"}

// Registration statuses accepted as valid (compared lowercased).
var validRegistrationStatuses = []string{"active", "registered", "incorporated", "good_standing"}

// Business name length bounds.
const (
	minNameLength = 2
	maxNameLength = 200
)

// checkJurisdiction verifies the jurisdiction code against the whitelist.
func checkJurisdiction(jurisdiction string) CheckResult {
	whitelisted := slices.Contains(jurisdictionWhitelist, jurisdiction)

	status := StatusFail
	verb := "not whitelisted"
	if whitelisted {
		status = StatusVerified
		verb = "whitelisted"
	}

	return CheckResult{
		CheckName: CheckJurisdiction,
		Status:    status,
		Details: map[string]any{
			"jurisdiction":        jurisdiction,
			"whitelisted":         whitelisted,
			"whitelist_countries": jurisdictionWhitelist,
		},
		Reason: fmt.Sprintf("Jurisdiction %s is %s", jurisdiction, verb),
	}
}

// checkEntityAge verifies the minimum age requirement. Young entities signal
// "needs human review", never outright rejection.
func checkEntityAge(ageDays int) CheckResult {
	meets := ageDays >= minEntityAgeDays

	status := StatusReview
	verb := "does not meet"
	if meets {
		status = StatusVerified
		verb = "meets"
	}

	return CheckResult{
		CheckName: CheckEntityAge,
		Status:    status,
		Details: map[string]any{
			"entity_age_days":       ageDays,
			"minimum_required_days": minEntityAgeDays,
			"meets_requirement":     meets,
		},
		Reason: fmt.Sprintf("Entity age %d days %s minimum requirement of %d days", ageDays, verb, minEntityAgeDays),
	}
}

// checkSanctions screens the supplied flags against the keyword list.
func checkSanctions(flags []string) CheckResult {
	detected := false
	for _, flag := range flags {
		if slices.Contains(sanctionsKeywords, flag) {
			detected = true
			break
		}
	}

	status := StatusVerified
	verb := "passed"
	if detected {
		status = StatusFail
		verb = "failed"
	}

	return CheckResult{
		CheckName: CheckSanctions,
		Status:    status,
		Details: map[string]any{
			"sanctions_flags":    flags,
			"flags_checked":      len(flags),
			"sanctions_detected": detected,
			"keywords_checked":   sanctionsKeywords,
		},
		Reason: fmt.Sprintf("Sanctions screening %s with %d flags checked", verb, len(flags)),
	}
}

// checkBusinessName validates name format and content. Format violations
// (length, no letters) fail; suspicious substrings only require review.
func checkBusinessName(name string) CheckResult {
	if name == "" {
		return CheckResult{
			CheckName: CheckBusinessName,
			Status:    StatusFail,
			Details: map[string]any{
				"business_name": name,
				"name_length":   0,
				"has_content":   false,
			},
			Reason: "Business name is empty or missing",
		}
	}

	nameLength := len(name)
	hasMinLength := nameLength >= minNameLength
	hasMaxLength := nameLength <= maxNameLength
	containsLetters := strings.ContainsFunc(name, unicode.IsLetter)

	lower := strings.ToLower(name)
	containsSuspicious := false
	for _, pattern := range suspiciousNamePatterns {
		if strings.Contains(lower, pattern) {
			containsSuspicious = true
			break
		}
	}

	var status Status
	var reason string
	switch {
	case !hasMinLength || !hasMaxLength || !containsLetters:
		status = StatusFail
		reason = "Business name does not meet format requirements"
	case containsSuspicious:
		status = StatusReview
		reason = "Business name contains suspicious patterns requiring review"
	default:
		status = StatusVerified
		reason = "Business name validation passed"
	}

	return CheckResult{
		CheckName: CheckBusinessName,
		Status:    status,
		Details: map[string]any{
			"business_name":       name,
			"name_length":         nameLength,
			"has_minimum_length":  hasMinLength,
			"has_maximum_length":  hasMaxLength,
			"contains_letters":    containsLetters,
			"contains_suspicious": containsSuspicious,
		},
		Reason: reason,
	}
}

// checkRegistrationStatus verifies the registration status is one of the
// accepted values. Unknown statuses require review.
func checkRegistrationStatus(registrationStatus string) CheckResult {
	valid := slices.Contains(validRegistrationStatuses, strings.ToLower(registrationStatus))

	status := StatusReview
	verb := "invalid or requires review"
	if valid {
		status = StatusVerified
		verb = "valid"
	}

	return CheckResult{
		CheckName: CheckRegistration,
		Status:    status,
		Details: map[string]any{
			"registration_status": registrationStatus,
			"valid_statuses":      validRegistrationStatuses,
			"is_valid":            valid,
		},
		Reason: fmt.Sprintf("Registration status '%s' is %s", registrationStatus, verb),
	}
}

// evaluator pairs a check with its input extraction so the service can run
// all rules uniformly. Every evaluator is pure and order-independent.
type evaluator func(Entity) CheckResult

// evaluators lists the rules in fixed evaluation order. The verdict's Checks
// slice always follows this order regardless of how the rules are scheduled.
var evaluators = []evaluator{
	func(e Entity) CheckResult { return checkJurisdiction(e.Jurisdiction) },
	func(e Entity) CheckResult { return checkEntityAge(e.EntityAgeDays) },
	func(e Entity) CheckResult { return checkSanctions(e.SanctionsFlags) },
	func(e Entity) CheckResult { return checkBusinessName(e.BusinessName) },
	func(e Entity) CheckResult { return checkRegistrationStatus(e.RegistrationStatus) },
}
